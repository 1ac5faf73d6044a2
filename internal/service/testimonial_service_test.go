package service

import (
	"testing"

	"github.com/sunnykids/internal/db"
)

func TestTestimonialCreateDefaultsActive(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewTestimonialService(gdb)
	if _, err := svc.Create(TestimonialInput{Content: "老师非常负责"}); err != ErrTestimonialNameMissing {
		t.Fatalf("expected ErrTestimonialNameMissing, got %v", err)
	}
	if _, err := svc.Create(TestimonialInput{Name: "李妈妈"}); err != ErrTestimonialContentMissing {
		t.Fatalf("expected ErrTestimonialContentMissing, got %v", err)
	}

	row, err := svc.Create(TestimonialInput{
		Name:    "李妈妈",
		Role:    "中班家长",
		Content: "老师非常负责，孩子很喜欢去幼儿园",
		Rating:  5,
	})
	if err != nil {
		t.Fatalf("failed to create testimonial: %v", err)
	}
	if !row.IsActive {
		t.Fatal("expected new testimonial to be active by default")
	}
	if row.AvatarURL != nil {
		t.Fatalf("expected nil avatar url, got %v", *row.AvatarURL)
	}
}

func TestTestimonialListActiveFiltersInactive(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewTestimonialService(gdb)
	visible, err := svc.Create(TestimonialInput{Name: "张爸爸", Content: "环境很好", Rating: 4})
	if err != nil {
		t.Fatalf("failed to create testimonial: %v", err)
	}
	hidden, err := svc.Create(TestimonialInput{Name: "匿名", Content: "待审核内容", Rating: 3})
	if err != nil {
		t.Fatalf("failed to create testimonial: %v", err)
	}

	inactive := false
	if _, err := svc.Update(hidden.ID, TestimonialPatch{IsActive: &inactive}); err != nil {
		t.Fatalf("failed to deactivate testimonial: %v", err)
	}

	rows, err := svc.ListActive()
	if err != nil {
		t.Fatalf("failed to list active testimonials: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != visible.ID {
		t.Fatalf("expected only the active testimonial, got %+v", rows)
	}

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("failed to list all testimonials: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rows in admin listing, got %d", len(all))
	}
}

func TestTestimonialPartialUpdate(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewTestimonialService(gdb)
	row, err := svc.Create(TestimonialInput{Name: "陈妈妈", Role: "小班家长", Content: "伙食很棒", Rating: 5})
	if err != nil {
		t.Fatalf("failed to create testimonial: %v", err)
	}

	newContent := "伙食很棒，每周菜单都会公示"
	updated, err := svc.Update(row.ID, TestimonialPatch{Content: &newContent})
	if err != nil {
		t.Fatalf("failed to update testimonial: %v", err)
	}
	if updated.Content != newContent {
		t.Fatalf("expected content to change, got %q", updated.Content)
	}
	if updated.Name != "陈妈妈" || updated.Role != "小班家长" || updated.Rating != 5 {
		t.Fatalf("expected untouched fields to persist, got %+v", updated)
	}

	var stored db.Testimonial
	if err := gdb.First(&stored, row.ID).Error; err != nil {
		t.Fatalf("failed to reload testimonial: %v", err)
	}
	if stored.Content != newContent || stored.Name != "陈妈妈" {
		t.Fatalf("expected partial update persisted, got %+v", stored)
	}

	missing, err := svc.Update(9999, TestimonialPatch{Content: &newContent})
	if err != nil {
		t.Fatalf("expected missing id to be a no-op, got %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil row for missing id, got %+v", missing)
	}
}

func TestTestimonialDeleteIdempotent(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewTestimonialService(gdb)
	row, err := svc.Create(TestimonialInput{Name: "赵妈妈", Content: "户外活动很丰富"})
	if err != nil {
		t.Fatalf("failed to create testimonial: %v", err)
	}

	if err := svc.Delete(9999); err != nil {
		t.Fatalf("expected delete of missing id to succeed, got %v", err)
	}

	var count int64
	gdb.Model(&db.Testimonial{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected table unchanged after missing-id delete, got %d rows", count)
	}

	if err := svc.Delete(row.ID); err != nil {
		t.Fatalf("failed to delete testimonial: %v", err)
	}
	gdb.Model(&db.Testimonial{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected table empty, got %d rows", count)
	}
}
