package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"squpe/contexts/social-impact/livestream-service/adapters/memory"
	"squpe/contexts/social-impact/livestream-service/domain/entities"
	domainerrors "squpe/contexts/social-impact/livestream-service/domain/errors"
	"squpe/contexts/social-impact/livestream-service/ports"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestService(store *memory.Store, clock *fakeClock) Service {
	return Service{
		Streams:       store,
		Outbox:        store,
		Clock:         clock,
		IDGen:         store,
		StreamBaseURL: "https://stream.squpe.app",
		RTMPIngestURL: "rtmp://stream.squpe.app/live",
	}
}

func validInput() ports.StartStreamInput {
	return ports.StartStreamInput{
		Title:    "City Council Coverage",
		Category: entities.StreamCategoryNews,
		IsPublic: true,
	}
}

func TestStartStreamMintsURLsAndDefaults(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	service := newTestService(store, clock)

	stream, err := service.StartStream(context.Background(), "user_12345", validInput())
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if !strings.HasPrefix(stream.StreamID, "stream_") {
		t.Fatalf("expected stream_ id prefix, got %s", stream.StreamID)
	}
	if !strings.HasPrefix(stream.StreamKey, "key_") {
		t.Fatalf("expected key_ prefix, got %s", stream.StreamKey)
	}
	if stream.StreamURL != "https://stream.squpe.app/live/"+stream.StreamID {
		t.Fatalf("unexpected stream url %s", stream.StreamURL)
	}
	if stream.RTMPURL != "rtmp://stream.squpe.app/live" {
		t.Fatalf("unexpected rtmp url %s", stream.RTMPURL)
	}
	if stream.Status != entities.StreamStatusLive {
		t.Fatalf("expected live status, got %s", stream.Status)
	}
	if stream.ViewerCount != 0 || stream.PeakViewerCount != 0 {
		t.Fatalf("expected zeroed viewer counts, got %d/%d", stream.ViewerCount, stream.PeakViewerCount)
	}
	if !stream.ChatEnabled {
		t.Fatal("expected chat enabled by default")
	}
	if !stream.StartedAt.Equal(clock.now) {
		t.Fatalf("expected started_at %s, got %s", clock.now, stream.StartedAt)
	}
}

func TestStartStreamRejectsInvalidInput(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store, &fakeClock{now: time.Now().UTC()})

	cases := map[string]func(*ports.StartStreamInput){
		"empty title":          func(in *ports.StartStreamInput) { in.Title = "  " },
		"title too long":       func(in *ports.StartStreamInput) { in.Title = strings.Repeat("x", 101) },
		"description too long": func(in *ports.StartStreamInput) { in.Description = strings.Repeat("x", 501) },
		"unknown category":     func(in *ports.StartStreamInput) { in.Category = "sports" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			input := validInput()
			mutate(&input)
			_, err := service.StartStream(context.Background(), "user_12345", input)
			if !errors.Is(err, domainerrors.ErrInvalidStreamInput) {
				t.Fatalf("expected invalid input error, got %v", err)
			}
		})
	}
}

func TestUpdateViewerCountTracksPeak(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store, &fakeClock{now: time.Now().UTC()})

	stream, err := service.StartStream(context.Background(), "user_12345", validInput())
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	for _, step := range []struct {
		count    int
		wantPeak int
	}{
		{count: 10, wantPeak: 10},
		{count: 50, wantPeak: 50},
		{count: 7, wantPeak: 50},
	} {
		updated, err := service.UpdateViewerCount(context.Background(), stream.StreamID, step.count)
		if err != nil {
			t.Fatalf("update to %d failed: %v", step.count, err)
		}
		if updated.ViewerCount != step.count {
			t.Fatalf("expected viewer count %d, got %d", step.count, updated.ViewerCount)
		}
		if updated.PeakViewerCount != step.wantPeak {
			t.Fatalf("expected peak %d after update to %d, got %d", step.wantPeak, step.count, updated.PeakViewerCount)
		}
	}
}

func TestEndStreamReportsDurationAndPeak(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	service := newTestService(store, clock)

	stream, err := service.StartStream(context.Background(), "user_12345", validInput())
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := service.UpdateViewerCount(context.Background(), stream.StreamID, 42); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	clock.now = clock.now.Add(95 * time.Minute)
	summary, err := service.EndStream(context.Background(), "user_12345", stream.StreamID)
	if err != nil {
		t.Fatalf("end failed: %v", err)
	}

	if summary.DurationMinutes != 95 {
		t.Fatalf("expected 95 minutes, got %d", summary.DurationMinutes)
	}
	if summary.PeakViewers != 42 {
		t.Fatalf("expected peak 42, got %d", summary.PeakViewers)
	}
	if summary.Message != "Livestream ended successfully" {
		t.Fatalf("unexpected message %q", summary.Message)
	}

	ended, err := service.GetStream(context.Background(), stream.StreamID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ended.Status != entities.StreamStatusEnded {
		t.Fatalf("expected ended status, got %s", ended.Status)
	}
	if ended.EndedAt == nil || !ended.EndedAt.Equal(clock.now) {
		t.Fatalf("expected ended_at %s, got %v", clock.now, ended.EndedAt)
	}
}

func TestEndStreamRepeatCallsKeepFirstSummary(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	service := newTestService(store, clock)

	stream, err := service.StartStream(context.Background(), "user_12345", validInput())
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	clock.now = clock.now.Add(30 * time.Minute)
	first, err := service.EndStream(context.Background(), "user_12345", stream.StreamID)
	if err != nil {
		t.Fatalf("first end failed: %v", err)
	}

	clock.now = clock.now.Add(2 * time.Hour)
	second, err := service.EndStream(context.Background(), "user_12345", stream.StreamID)
	if err != nil {
		t.Fatalf("second end failed: %v", err)
	}
	if second.DurationMinutes != first.DurationMinutes {
		t.Fatalf("expected stable duration %d, got %d", first.DurationMinutes, second.DurationMinutes)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one ended event despite repeat calls, got %d", len(pending))
	}
}

func TestEndStreamRejectsNonOwner(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store, &fakeClock{now: time.Now().UTC()})

	stream, err := service.StartStream(context.Background(), "user_12345", validInput())
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	_, err = service.EndStream(context.Background(), "user_99999", stream.StreamID)
	if !errors.Is(err, domainerrors.ErrNotStreamOwner) {
		t.Fatalf("expected not-owner error, got %v", err)
	}

	current, err := service.GetStream(context.Background(), stream.StreamID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if current.Status != entities.StreamStatusLive {
		t.Fatalf("expected stream still live, got %s", current.Status)
	}
}

func TestListStreamsOrdersByViewersAndClampsLimit(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store, &fakeClock{now: time.Now().UTC()})

	counts := []int{3, 120, 45}
	ids := make([]string, 0, len(counts))
	for i, count := range counts {
		input := validInput()
		input.Title = input.Title + " " + strings.Repeat("I", i+1)
		stream, err := service.StartStream(context.Background(), "user_12345", input)
		if err != nil {
			t.Fatalf("start %d failed: %v", i, err)
		}
		if _, err := service.UpdateViewerCount(context.Background(), stream.StreamID, count); err != nil {
			t.Fatalf("update %d failed: %v", i, err)
		}
		ids = append(ids, stream.StreamID)
	}

	items, err := service.ListStreams(context.Background(), ports.StreamFilter{Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 streams, got %d", len(items))
	}
	if items[0].StreamID != ids[1] || items[1].StreamID != ids[2] {
		t.Fatalf("expected most popular first, got %s then %s", items[0].StreamID, items[1].StreamID)
	}

	all, err := service.ListStreams(context.Background(), ports.StreamFilter{Limit: -5})
	if err != nil {
		t.Fatalf("list with negative limit failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected clamped default to return all 3, got %d", len(all))
	}
}

func TestListStreamsFiltersByStatus(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store, &fakeClock{now: time.Now().UTC()})

	first, err := service.StartStream(context.Background(), "user_12345", validInput())
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	second, err := service.StartStream(context.Background(), "user_12345", validInput())
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := service.EndStream(context.Background(), "user_12345", first.StreamID); err != nil {
		t.Fatalf("end failed: %v", err)
	}

	live, err := service.ListStreams(context.Background(), ports.StreamFilter{Status: entities.StreamStatusLive})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(live) != 1 || live[0].StreamID != second.StreamID {
		t.Fatalf("expected only the live stream, got %d items", len(live))
	}
}
