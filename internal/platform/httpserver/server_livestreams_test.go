package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"squpe/contexts/social-impact/livestream-service/domain/entities"
	livestreamhttp "squpe/contexts/social-impact/livestream-service/transport/http"
)

func validStreamBody() []byte {
	return []byte(`{"title":"City Council Coverage","category":"news"}`)
}

func startStream(t *testing.T, server *Server) livestreamhttp.LiveStreamResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/livestreams", bytes.NewReader(validStreamBody()))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp livestreamhttp.LiveStreamResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestStartStreamReturnsCreatedResource(t *testing.T) {
	server := newTestServer()
	resp := startStream(t, server)

	if resp.Status != "live" {
		t.Fatalf("expected live status, got %q", resp.Status)
	}
	if resp.StreamURL != "https://stream.squpe.app/live/"+resp.ID {
		t.Fatalf("unexpected stream url %q", resp.StreamURL)
	}
	if resp.RTMPURL != "rtmp://stream.squpe.app/live" {
		t.Fatalf("unexpected rtmp url %q", resp.RTMPURL)
	}
	if !resp.IsPublic {
		t.Fatal("expected is_public to default to true")
	}
	if !resp.ChatEnabled {
		t.Fatal("expected chat_enabled true")
	}
}

func TestStartStreamHonorsIsPublicFalse(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"title":"Private Briefing","category":"news","is_public":false}`)
	req := httptest.NewRequest(http.MethodPost, "/api/livestreams", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp livestreamhttp.LiveStreamResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.IsPublic {
		t.Fatal("expected is_public false")
	}
}

func TestStartStreamRejectsUnknownCategory(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"title":"Match Day","category":"sports"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/livestreams", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestEndStreamForbiddenForNonOwner(t *testing.T) {
	server := newTestServer()

	// Seed a stream owned by someone other than the demo user.
	err := server.livestreams.Store.CreateStream(context.Background(), entities.Stream{
		StreamID:  "stream_foreign",
		Title:     "Another Creator",
		Category:  entities.StreamCategoryNews,
		Status:    entities.StreamStatusLive,
		StartedAt: time.Now().UTC(),
		CreatorID: "user_99999",
		IsPublic:  true,
	})
	if err != nil {
		t.Fatalf("seed stream: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/livestreams/stream_foreign/end", nil)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}

	var envelope ErrorEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Code != "NOT_STREAM_OWNER" {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
}

func TestEndStreamReturnsSummary(t *testing.T) {
	server := newTestServer()
	stream := startStream(t, server)

	viewerReq := httptest.NewRequest(
		http.MethodPost,
		fmt.Sprintf("/api/livestreams/%s/viewers?count=33", stream.ID),
		nil,
	)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, viewerReq)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	endReq := httptest.NewRequest(
		http.MethodPost,
		fmt.Sprintf("/api/livestreams/%s/end", stream.ID),
		nil,
	)
	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, endReq)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var summary livestreamhttp.EndStreamResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if !summary.Success || summary.PeakViewers != 33 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.StreamID != stream.ID {
		t.Fatalf("expected stream id %s, got %s", stream.ID, summary.StreamID)
	}
}

func TestUpdateViewerCountNotFound(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/livestreams/stream_missing/viewers?count=5", nil)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUpdateViewerCountRequiresCountParam(t *testing.T) {
	server := newTestServer()
	stream := startStream(t, server)

	req := httptest.NewRequest(
		http.MethodPost,
		fmt.Sprintf("/api/livestreams/%s/viewers", stream.ID),
		nil,
	)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestListStreamsDefaultsToLive(t *testing.T) {
	server := newTestServer()
	first := startStream(t, server)
	startStream(t, server)

	endReq := httptest.NewRequest(
		http.MethodPost,
		fmt.Sprintf("/api/livestreams/%s/end", first.ID),
		nil,
	)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, endReq)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/livestreams", nil)
	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var items []livestreamhttp.LiveStreamResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected only the live stream, got %d", len(items))
	}
	if items[0].ID == first.ID {
		t.Fatal("ended stream should not appear in the default listing")
	}
}
