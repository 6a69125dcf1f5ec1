package banner

import (
	"errors"
	"testing"
)

func TestBannerListing(t *testing.T) {
	svc := NewService(NewInMemoryRepository([]Banner{
		{ID: 1, Title: "Summer Sale", Image: "/img/summer.png", Position: 2, Active: true},
		{ID: 2, Title: "New Arrivals", Image: "/img/new.png", Position: 1, Active: true},
		{ID: 3, Title: "Draft Promo", Image: "/img/draft.png", Position: 0, Active: false},
	}))

	banners, err := svc.List(0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(banners) != 2 {
		t.Fatalf("expected 2 active banners, got %d", len(banners))
	}
	if banners[0].Title != "New Arrivals" {
		t.Fatalf("banners not ordered by position: %+v", banners)
	}

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 banners total, got %d", len(all))
	}
}

func TestBannerCRUD(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	if _, err := svc.Create(Banner{Image: "/img/x.png"}); err == nil {
		t.Fatalf("expected error for banner without title")
	}
	if _, err := svc.Create(Banner{Title: "Eid Offer"}); err == nil {
		t.Fatalf("expected error for banner without image")
	}

	created, err := svc.Create(Banner{Title: "Eid Offer", Image: "/img/eid.png", Active: true})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	created.Active = false
	updated, err := svc.Update(created.ID, created)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Active {
		t.Fatalf("banner still active after update")
	}

	visible, _ := svc.List(0)
	if len(visible) != 0 {
		t.Fatalf("deactivated banner still served: %+v", visible)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
