package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"jafa-app/config"
	"jafa-app/controllers/helpers"
	"jafa-app/models"
	"jafa-app/pdfsheet"
	"jafa-app/repositories"
	"jafa-app/validation"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// ErrMailDisabled is returned when no SMTP host is configured.
var ErrMailDisabled = errors.New("e-mail is not configured (SMTP_HOST is empty)")

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type MailService struct {
	DB        *gorm.DB
	Shipments *repositories.ShipmentRepository
	Sender    Sender
	From      string
	FontDir   string
	Log       *zap.Logger
}

// NewMailService dials the configured SMTP server; Sender stays nil when
// mail is disabled.
func NewMailService(db *gorm.DB, log *zap.Logger) *MailService {
	s := &MailService{
		DB:        db,
		Shipments: repositories.NewShipmentRepository(db),
		From:      config.SMTPFrom,
		FontDir:   config.PDFFontDir,
		Log:       log,
	}
	if config.MailEnabled() {
		s.Sender = gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
	}
	return s
}

// SendCarrierOrder mails the shipment sheet to the assigned carrier.
func (s *MailService) SendCarrierOrder(shipmentID uint, actor int) (string, error) {
	if s.Sender == nil {
		return "", ErrMailDisabled
	}

	shipment, err := s.Shipments.GetByID(shipmentID)
	if err != nil {
		return "", err
	}
	if shipment.Carrier == nil {
		return "", validation.Field("carrier_id", "required", "No carrier is assigned to this shipment.")
	}
	if shipment.Carrier.Email == "" {
		return "", validation.Field("carrier_id", "email", "The assigned carrier has no e-mail address.")
	}

	var pdf bytes.Buffer
	if err := pdfsheet.Render(&pdf, pdfsheet.Title(*shipment), pdfsheet.Sections(*shipment), pdfsheet.WithFontDir(s.FontDir)); err != nil {
		return "", err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.From)
	msg.SetHeader("To", shipment.Carrier.Email)
	msg.SetHeader("Subject", "Objednávka přepravy "+shipment.ReferenceCode)
	msg.SetBody("text/plain", carrierOrderBody(*shipment))
	msg.Attach(pdfsheet.FileName(*shipment), gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf.Bytes())
		return err
	}))

	if err := s.Sender.DialAndSend(msg); err != nil {
		s.Log.Error("Failed to send carrier order", zap.String("reference_code", shipment.ReferenceCode), zap.Error(err))
		return "", err
	}

	s.Log.Info("Carrier order sent", zap.String("reference_code", shipment.ReferenceCode), zap.String("to", shipment.Carrier.Email))
	if err := helpers.InsertShipmentHistory(s.DB, shipment.ReferenceCode, shipment.Status, models.HistoryOrderSent, shipment.Carrier.Email, actor); err != nil {
		s.Log.Warn("Could not record carrier order history", zap.Error(err))
	}
	return shipment.Carrier.Email, nil
}

func carrierOrderBody(s models.Shipment) string {
	contact := s.Carrier.ContactPerson
	if contact == "" {
		contact = s.Carrier.Name
	}
	return fmt.Sprintf("Dobrý den %s,\n\nv příloze zasíláme podklady k přepravě %s\n(%s -> %s).\n\nS pozdravem\nJAFA\n",
		contact, s.ReferenceCode, firstLine(s.LoadingPlace), firstLine(s.UnloadingPlace))
}

func firstLine(v string) string {
	for i, r := range v {
		if r == '\n' || r == '\r' {
			return v[:i]
		}
	}
	return v
}
