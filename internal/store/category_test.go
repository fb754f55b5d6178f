// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"shoppress/internal/models"
)

func TestBuildTree(t *testing.T) {
	rootID := uuid.New()
	childID := uuid.New()
	grandID := uuid.New()

	flat := []models.Category{
		{ID: grandID, Name: "Gravel", ParentID: &childID},
		{ID: rootID, Name: "Bikes"},
		{ID: childID, Name: "Road", ParentID: &rootID},
		{ID: uuid.New(), Name: "Accessories"},
	}

	tree := buildTree(flat, nil, 0)
	if len(tree) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree))
	}

	var bikes *models.Category
	for i := range tree {
		if tree[i].ID == rootID {
			bikes = &tree[i]
		}
	}
	if bikes == nil {
		t.Fatal("bikes root not found")
	}
	if bikes.Depth != 0 {
		t.Errorf("root depth = %d, want 0", bikes.Depth)
	}
	if len(bikes.Children) != 1 {
		t.Fatalf("expected 1 child under bikes, got %d", len(bikes.Children))
	}
	road := bikes.Children[0]
	if road.Depth != 1 {
		t.Errorf("child depth = %d, want 1", road.Depth)
	}
	if len(road.Children) != 1 || road.Children[0].ID != grandID {
		t.Error("grandchild not nested under its parent")
	}
	if road.Children[0].Depth != 2 {
		t.Errorf("grandchild depth = %d, want 2", road.Children[0].Depth)
	}
}

func TestFlattenTreePreservesDepthFirstOrder(t *testing.T) {
	rootID := uuid.New()
	childID := uuid.New()

	flat := []models.Category{
		{ID: rootID, Name: "A"},
		{ID: childID, Name: "A1", ParentID: &rootID},
		{ID: uuid.New(), Name: "B"},
	}

	var result []models.Category
	flattenTree(buildTree(flat, nil, 0), &result)

	if len(result) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(result))
	}
	want := []string{"A", "A1", "B"}
	for i, name := range want {
		if result[i].Name != name {
			t.Errorf("position %d = %q, want %q", i, result[i].Name, name)
		}
	}
}

func TestPtrEqual(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	aCopy := a

	tests := []struct {
		name string
		x, y *uuid.UUID
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", &a, nil, false},
		{"same value", &a, &aCopy, true},
		{"different values", &a, &b, false},
	}
	for _, tt := range tests {
		if got := ptrEqual(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: ptrEqual = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCategoryHierarchySlugs(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	t.Cleanup(func() {
		cleanCategories(t, db, "test-bikes/road/gravel", "test-bikes/road", "test-bikes")
	})

	root, err := s.Create(&models.Category{Name: "Test Bikes"})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if root.Slug != "test-bikes" {
		t.Errorf("root slug = %q, want %q", root.Slug, "test-bikes")
	}

	child, err := s.Create(&models.Category{Name: "Road", ParentID: &root.ID})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if child.Slug != "test-bikes/road" {
		t.Errorf("child slug = %q, want %q", child.Slug, "test-bikes/road")
	}

	grand, err := s.Create(&models.Category{Name: "Gravel", ParentID: &child.ID})
	if err != nil {
		t.Fatalf("create grandchild: %v", err)
	}
	if grand.Slug != "test-bikes/road/gravel" {
		t.Errorf("grandchild slug = %q, want %q", grand.Slug, "test-bikes/road/gravel")
	}

	// A missing parent is a hard error, not a silently unprefixed slug.
	missing := uuid.New()
	if _, err := s.Create(&models.Category{Name: "Orphan", ParentID: &missing}); err != ErrParentNotFound {
		t.Errorf("expected ErrParentNotFound, got %v", err)
	}
}

func TestCategoryProductCountPropagation(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	t.Cleanup(func() {
		cleanCategories(t, db, "count-root/mid/leaf", "count-root/mid", "count-root")
	})

	root, err := s.Create(&models.Category{Name: "Count Root"})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	mid, err := s.Create(&models.Category{Name: "Mid", ParentID: &root.ID})
	if err != nil {
		t.Fatalf("create mid: %v", err)
	}
	leaf, err := s.Create(&models.Category{Name: "Leaf", ParentID: &mid.ID})
	if err != nil {
		t.Fatalf("create leaf: %v", err)
	}

	if err := s.IncrementProductCount(leaf.ID); err != nil {
		t.Fatalf("increment: %v", err)
	}

	for _, id := range []uuid.UUID{leaf.ID, mid.ID, root.ID} {
		c, err := s.FindByID(id)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if c.ProductCount != 1 {
			t.Errorf("category %s count = %d, want 1", c.Name, c.ProductCount)
		}
	}

	// Two decrements from one increment: the floor keeps counts at zero.
	if err := s.DecrementProductCount(leaf.ID); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if err := s.DecrementProductCount(leaf.ID); err != nil {
		t.Fatalf("second decrement: %v", err)
	}
	c, err := s.FindByID(root.ID)
	if err != nil {
		t.Fatalf("find root: %v", err)
	}
	if c.ProductCount != 0 {
		t.Errorf("root count after over-decrement = %d, want 0", c.ProductCount)
	}
}

func TestCategoryDeleteGuards(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	t.Cleanup(func() {
		cleanCategories(t, db, "guard-parent/child", "guard-parent")
	})

	parent, err := s.Create(&models.Category{Name: "Guard Parent"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	child, err := s.Create(&models.Category{Name: "Child", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	if err := s.Delete(parent.ID); err != ErrHasChildren {
		t.Errorf("delete parent with child: expected ErrHasChildren, got %v", err)
	}

	if err := s.Delete(child.ID); err != nil {
		t.Errorf("delete leaf: %v", err)
	}
	if err := s.Delete(parent.ID); err != nil {
		t.Errorf("delete parent after child removed: %v", err)
	}
}

func TestCategoryDescendantsAndBreadcrumbs(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	t.Cleanup(func() {
		cleanCategories(t, db, "walk-root/a/a1", "walk-root/a", "walk-root/b", "walk-root")
	})

	root, err := s.Create(&models.Category{Name: "Walk Root"})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	a, err := s.Create(&models.Category{Name: "A", ParentID: &root.ID})
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	a1, err := s.Create(&models.Category{Name: "A1", ParentID: &a.ID})
	if err != nil {
		t.Fatalf("create a1: %v", err)
	}
	if _, err := s.Create(&models.Category{Name: "B", ParentID: &root.ID}); err != nil {
		t.Fatalf("create b: %v", err)
	}

	ids, err := s.AllDescendantIDs(root.ID)
	if err != nil {
		t.Fatalf("descendants: %v", err)
	}
	if len(ids) != 4 {
		t.Errorf("descendant count = %d, want 4 (self + 3)", len(ids))
	}

	crumbs, err := s.Breadcrumbs(a1.ID)
	if err != nil {
		t.Fatalf("breadcrumbs: %v", err)
	}
	if len(crumbs) != 3 {
		t.Fatalf("breadcrumb count = %d, want 3", len(crumbs))
	}
	want := []string{"Walk Root", "A", "A1"}
	for i, name := range want {
		if crumbs[i].Name != name {
			t.Errorf("crumb %d = %q, want %q", i, crumbs[i].Name, name)
		}
	}
}
