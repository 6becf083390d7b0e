package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rmartell/go-site-sync/models"
)

func (a *httpBackendAdapter) InsertMediaRecord(ctx context.Context, rec models.RemoteMediaRecord) (models.RemoteMediaRecord, error) {
	resp, err := a.authedRequest(a.client.R().SetContext(ctx)).
		SetHeader("Content-Type", "application/json").
		SetBody(rec).
		Post("/rest/v1/site_media")
	if err != nil {
		return models.RemoteMediaRecord{}, classifyError("insert media record", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RemoteMediaRecord{}, fmt.Errorf("insert media record: %w", err)
	}

	var created models.RemoteMediaRecord
	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return models.RemoteMediaRecord{}, fmt.Errorf("decode media record response: %w", err)
	}
	if created.ID == "" {
		return models.RemoteMediaRecord{}, fmt.Errorf("insert media record: server returned no id")
	}

	return created, nil
}
