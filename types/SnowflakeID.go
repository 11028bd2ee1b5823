package types

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// SnowflakeID is stored as BIGINT and travels as a JSON string, since
// JavaScript clients cannot hold 64-bit integers exactly.
type SnowflakeID int64

func ParseSnowflakeID(v string) (SnowflakeID, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snowflake ID %q: %w", v, err)
	}
	return SnowflakeID(n), nil
}

func (s SnowflakeID) String() string {
	return strconv.FormatInt(int64(s), 10)
}

func (s SnowflakeID) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SnowflakeID) Scan(value interface{}) (err error) {
	switch v := value.(type) {
	case int64:
		*s = SnowflakeID(v)
	case []byte:
		*s, err = ParseSnowflakeID(string(v))
	case string:
		*s, err = ParseSnowflakeID(v)
	default:
		err = fmt.Errorf("cannot scan %T into SnowflakeID", value)
	}
	return err
}

func (s SnowflakeID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

// UnmarshalJSON accepts both "123" and 123.
func (s *SnowflakeID) UnmarshalJSON(data []byte) (err error) {
	raw := string(data)
	if unquoted, qerr := strconv.Unquote(raw); qerr == nil {
		raw = unquoted
	}
	*s, err = ParseSnowflakeID(raw)
	return err
}
