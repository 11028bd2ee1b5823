package services

import (
	"context"
	"io"
	"jafa-app/models"
	"jafa-app/repositories"
	"jafa-app/storage"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentUploadOpenDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.shipments.Create(validInput(f.customer.ID), 1)
	require.NoError(t, err)

	_, err = f.documents.Upload(ctx, s.ID, DocumentInput{Name: ""}, Upload{Filename: "a.pdf", Body: strings.NewReader("x")}, 1)
	assert.Equal(t, []string{"name"}, fieldsOf(t, err))

	_, err = f.documents.Upload(ctx, s.ID, DocumentInput{Name: "CMR"}, Upload{}, 1)
	assert.Equal(t, []string{"file"}, fieldsOf(t, err))

	_, err = f.documents.Upload(ctx, 9999, DocumentInput{Name: "CMR"}, Upload{Filename: "a.pdf", Body: strings.NewReader("x")}, 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	doc, err := f.documents.Upload(ctx, s.ID, DocumentInput{Name: " Dodací list "}, Upload{
		Filename: "dodaci list.pdf", ContentType: "application/pdf", Size: 5, Body: strings.NewReader("%PDF1"),
	}, 4)
	require.NoError(t, err)
	assert.Equal(t, "Dodací list", doc.Name)
	assert.Equal(t, 4, doc.UploadedBy)
	assert.True(t, strings.HasPrefix(doc.StoredRef, "dokumenty/2025/03/12/"), doc.StoredRef)

	docs, err := f.documents.List(s.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	got, rc, err := f.documents.Open(ctx, doc.ID)
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "%PDF1", string(body))
	assert.Equal(t, "dodaci list.pdf", got.OriginalFilename)

	removed, err := f.documents.Delete(ctx, doc.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, removed.ID)
	_, err = f.store.Open(ctx, doc.StoredRef)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = f.documents.Delete(ctx, doc.ID, 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	history, err := f.shipments.HistoryOf(s.ID)
	require.NoError(t, err)
	var types []string
	for _, h := range history {
		types = append(types, h.Type)
	}
	assert.Equal(t, []string{models.HistoryCreated, models.HistoryDocumentAdded, models.HistoryDocumentRemoved}, types)
}

func TestDocumentDeleteSurvivesMissingFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.shipments.Create(validInput(f.customer.ID), 1)
	require.NoError(t, err)

	doc, err := f.documents.Upload(ctx, s.ID, DocumentInput{Name: "CMR"}, Upload{Filename: "a.pdf", Body: strings.NewReader("x")}, 1)
	require.NoError(t, err)
	require.NoError(t, f.store.Delete(ctx, doc.StoredRef))

	_, err = f.documents.Delete(ctx, doc.ID, 1)
	assert.NoError(t, err)

	_, _, err = f.documents.Open(ctx, doc.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
