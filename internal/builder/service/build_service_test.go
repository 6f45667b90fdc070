package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/engine"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/repository"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/sse"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/testutil"
)

// flakyStore fails every call with the configured errors.
type flakyStore struct {
	stored   entity.Build
	loads    int
	loadErr  error
	saveErr  error
	saves    int
	clears   int
	lastSave entity.Build
}

func (s *flakyStore) Load(context.Context, string) (entity.Build, error) {
	s.loads++
	if s.loadErr != nil {
		return entity.Build{}, s.loadErr
	}
	return s.stored, nil
}

func (s *flakyStore) Save(_ context.Context, _ string, b entity.Build) error {
	s.saves++
	s.lastSave = b
	return s.saveErr
}

func (s *flakyStore) Clear(context.Context, string) error {
	s.clears++
	return s.saveErr
}

func sample(id string) entity.Component {
	return testutil.FindSample(id)
}

func TestBuildServicePersistsAndRehydrates(t *testing.T) {
	rdb, _ := testutil.SetupRedis(t)
	store := repository.NewRedisBuildStore(rdb, "speclogic-build-storage", time.Hour, nil)
	ctx := context.Background()

	first := NewBuildService(store, nil, nil, nil)
	if _, err := first.Add(ctx, "s1", sample("cpu-amd-ryzen-7-7700x")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := first.Add(ctx, "s1", sample("motherboard-msi-pro-b660m-a")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	second := NewBuildService(store, nil, nil, nil)
	snap := second.Get(ctx, "s1")
	if snap.Build.CPU == nil || snap.Build.Motherboard == nil {
		t.Fatalf("expected the stored build to be rehydrated, got %+v", snap.Build)
	}
	if snap.TotalPrice != 299+129 {
		t.Fatalf("expected derived total price, got %v", snap.TotalPrice)
	}
	if len(snap.Validation.Issues) != 1 || snap.Validation.Issues[0].Code != engine.CodeSocketMismatch {
		t.Fatalf("expected derived socket mismatch, got %+v", snap.Validation.Issues)
	}

	if other := second.Get(ctx, "s2"); !other.Build.IsEmpty() {
		t.Fatal("sessions must not share builds")
	}
}

func TestBuildServiceKeepsStateWhenSaveFails(t *testing.T) {
	store := &flakyStore{saveErr: errors.New("redis down")}
	svc := NewBuildService(store, nil, nil, nil)
	ctx := context.Background()

	snap, err := svc.Add(ctx, "s1", sample("gpu-nvidia-rtx-4070"))
	if err != nil {
		t.Fatalf("Add should not fail on persistence errors: %v", err)
	}
	if snap.Build.GPU == nil || store.saves != 1 {
		t.Fatalf("expected one save attempt and the GPU in the snapshot, got %d", store.saves)
	}
	if got := svc.Get(ctx, "s1"); got.Build.GPU == nil {
		t.Fatal("in-memory build lost after a failed save")
	}
}

func TestBuildServiceLoadFailureStartsEmpty(t *testing.T) {
	store := &flakyStore{loadErr: errors.New("timeout")}
	svc := NewBuildService(store, nil, nil, nil)
	if snap := svc.Get(context.Background(), "s1"); !snap.Build.IsEmpty() || snap.Power != nil {
		t.Fatalf("expected an empty build, got %+v", snap.Build)
	}
}

func TestBuildServiceReplaceRemoveClear(t *testing.T) {
	store := &flakyStore{}
	svc := NewBuildService(store, nil, nil, nil)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "s1", sample("psu-evga-500-w1")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	snap, err := svc.Replace(ctx, "s1", entity.KindPSU, sample("psu-corsair-rm850x"))
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if snap.Build.PSU.Wattage != 850 || store.lastSave.PSU.Wattage != 850 {
		t.Fatal("expected the 850W PSU to be stored")
	}

	_, err = svc.Replace(ctx, "s1", entity.KindCPU, sample("psu-evga-500-w1"))
	if !errors.Is(err, ErrKindMismatch) || !IsClientError(err) {
		t.Fatalf("expected a kind mismatch client error, got %v", err)
	}
	if svc.Current(ctx, "s1").PSU.Wattage != 850 {
		t.Fatal("a rejected replace must not change the build")
	}

	snap, err = svc.Remove(ctx, "s1", entity.KindPSU)
	if err != nil || !snap.Build.IsEmpty() {
		t.Fatalf("expected empty build after removal, got %+v (%v)", snap.Build, err)
	}
	if store.clears != 1 {
		t.Fatalf("an emptied build should clear the stored record, got %d clears", store.clears)
	}

	if _, err := svc.Add(ctx, "s1", nil); !IsClientError(err) {
		t.Fatalf("expected a client error for a nil component, got %v", err)
	}

	svc.Add(ctx, "s1", sample("case-nzxt-h1"))
	if snap := svc.Clear(ctx, "s1"); !snap.Build.IsEmpty() || len(snap.Missing) != 7 {
		t.Fatalf("expected cleared build, got %+v", snap.Build)
	}
}

func TestBuildServicePublishesUpdates(t *testing.T) {
	hub := sse.NewHub(nil)
	client := sse.NewClient("c1", "s1")
	hub.Register(client)
	svc := NewBuildService(&flakyStore{}, nil, hub, nil)

	if _, err := svc.Add(context.Background(), "s1", sample("ram-gskill-flare-x5-32gb")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	select {
	case ev := <-client.Events:
		if ev.EventType != sse.EventBuildUpdate {
			t.Fatalf("unexpected event %s", ev.EventType)
		}
		var payload struct {
			Action string `json:"action"`
			State  struct {
				Build      entity.Build `json:"build"`
				TotalPrice float64      `json:"total_price"`
			} `json:"state"`
		}
		if err := json.Unmarshal([]byte(ev.Data), &payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.Action != "add" || payload.State.Build.RAM == nil || payload.State.TotalPrice != 109 {
			t.Fatalf("unexpected payload %s", ev.Data)
		}
	default:
		t.Fatal("expected a build_update event")
	}
}

func TestBuildServiceAddByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedCatalog(t, db, testutil.SampleCatalog()...)
	svc := NewBuildService(&flakyStore{}, repository.NewCatalogRepository(db), nil, nil)
	ctx := context.Background()

	snap, err := svc.AddByID(ctx, "s1", "cooler-noctua-nh-d15")
	if err != nil {
		t.Fatalf("AddByID: %v", err)
	}
	if snap.Build.Cooler == nil || snap.Build.Cooler.HeightMM != 165 {
		t.Fatalf("expected the cooler in its slot, got %+v", snap.Build.Cooler)
	}
	if _, err := svc.AddByID(ctx, "s1", "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBuildServiceReadsDoNotCreateSessions(t *testing.T) {
	store := &flakyStore{}
	svc := NewBuildService(store, nil, nil, nil)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		svc.Get(ctx, fmt.Sprintf("anonymous-%d", i))
	}
	if n := svc.Sessions(); n != 0 {
		t.Fatalf("expected reads to leave no sessions behind, got %d", n)
	}

	store.stored = entity.Build{PSU: sample("psu-corsair-rm850x").(*entity.PSU)}
	if got := svc.Current(ctx, "stored"); got.PSU == nil {
		t.Fatal("expected the stored build to be served without a session")
	}
}

func TestBuildServiceEvictIdle(t *testing.T) {
	svc := NewBuildService(&flakyStore{}, nil, nil, nil)
	ctx := context.Background()
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	for _, id := range []string{"s1", "s2", "s3"} {
		if _, err := svc.Add(ctx, id, sample("cpu-amd-ryzen-7-7700x")); err != nil {
			t.Fatalf("Add %s: %v", id, err)
		}
	}
	clock = clock.Add(90 * time.Minute)
	svc.Get(ctx, "s2")

	clock = clock.Add(45 * time.Minute)
	if n := svc.EvictIdle(2 * time.Hour); n != 2 {
		t.Fatalf("expected 2 sessions evicted, got %d", n)
	}
	if n := svc.Sessions(); n != 1 {
		t.Fatalf("expected 1 session left, got %d", n)
	}
	if got := svc.Current(ctx, "s2"); got.CPU == nil {
		t.Fatal("recently used session lost its build")
	}
}

func TestBuildServiceRunJanitorStops(t *testing.T) {
	svc := NewBuildService(&flakyStore{}, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RunJanitor(ctx, time.Hour, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}

func TestBuildServiceRetriesLoadAfterOutage(t *testing.T) {
	stored := entity.Build{
		CPU: sample("cpu-amd-ryzen-7-7700x").(*entity.CPU),
		GPU: sample("gpu-nvidia-rtx-4070").(*entity.GPU),
	}
	store := &flakyStore{stored: stored, loadErr: errors.New("timeout"), saveErr: errors.New("timeout")}
	svc := NewBuildService(store, nil, nil, nil)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "s1", sample("psu-corsair-rm850x")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	store.loadErr, store.saveErr = nil, nil
	snap, err := svc.Add(ctx, "s1", sample("case-fractal-pop-air"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if snap.Build.CPU == nil || snap.Build.GPU == nil {
		t.Fatalf("stored build was overwritten after the outage: %+v", snap.Build)
	}
	if store.lastSave.CPU == nil || store.lastSave.Case == nil {
		t.Fatalf("expected the recovered build to be saved, got %+v", store.lastSave)
	}
	if store.loads != 2 {
		t.Fatalf("expected the load to be retried once, got %d loads", store.loads)
	}
}
