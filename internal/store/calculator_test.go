// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"shoppress/internal/models"
)

func testCalculator() *models.Calculator {
	return &models.Calculator{
		Title:             "Test Website Estimate",
		DefaultHourlyRate: 80,
		MinHourlyRate:     50,
		MaxHourlyRate:     120,
		Active:            true,
		Steps: []models.CalculatorStep{
			{ID: "features", Title: "Features", Fields: []models.StepField{
				{ID: "base", Kind: models.FieldFeature, Label: "Base build", Hours: 20, Mandatory: true},
				{ID: "shop", Kind: models.FieldFeature, Label: "Web shop", Hours: 30},
				{ID: "brief", Kind: models.FieldConfig, Label: "Brief", Type: models.ConfigText},
			}},
		},
	}
}

func TestCalculatorLifecycle(t *testing.T) {
	db := testDB(t)
	calculators := NewCalculatorStore(db)

	created, err := calculators.Create(testCalculator())
	if err != nil {
		t.Fatalf("create calculator: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM calculators WHERE id = $1", created.ID) })

	if created.Slug != "test-website-estimate" {
		t.Errorf("slug: got %q, want %q", created.Slug, "test-website-estimate")
	}
	if len(created.Steps) != 1 || len(created.Steps[0].Fields) != 3 {
		t.Fatalf("steps round trip: got %+v", created.Steps)
	}
	if created.Steps[0].Fields[0].Kind != models.FieldFeature {
		t.Errorf("field kind: got %q", created.Steps[0].Fields[0].Kind)
	}

	// Active calculators are visible on the storefront.
	found, err := calculators.FindActiveBySlug(created.Slug)
	if err != nil {
		t.Fatalf("find active: %v", err)
	}
	if found == nil {
		t.Fatal("expected active calculator by slug")
	}

	// Deactivating hides it from the storefront but not the back office.
	found.Active = false
	if err := calculators.Update(found); err != nil {
		t.Fatalf("update: %v", err)
	}
	hidden, err := calculators.FindActiveBySlug(created.Slug)
	if err != nil {
		t.Fatalf("find active after deactivate: %v", err)
	}
	if hidden != nil {
		t.Error("expected inactive calculator to be invisible by slug")
	}
	still, err := calculators.FindByID(created.ID)
	if err != nil || still == nil {
		t.Fatalf("find by id after deactivate: %v, %v", still, err)
	}
}

func TestSubmissionSnapshotSurvivesCalculatorEdit(t *testing.T) {
	db := testDB(t)
	calculators := NewCalculatorStore(db)
	submissions := NewSubmissionStore(db)

	calc, err := calculators.Create(testCalculator())
	if err != nil {
		t.Fatalf("create calculator: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM calculator_submissions WHERE calculator_id = $1", calc.ID)
		db.Exec("DELETE FROM calculators WHERE id = $1", calc.ID)
	})

	sub, err := submissions.Create(&models.CalculatorSubmission{
		CalculatorID: calc.ID,
		Name:         "Ana",
		Email:        "ana@example.com",
		Selections: []models.FieldSelection{
			{FieldID: "base", Selected: true},
			{FieldID: "shop", Selected: true},
		},
		TotalHours: 50,
		HourlyRate: 80,
		TotalPrice: 4000,
	})
	if err != nil {
		t.Fatalf("create submission: %v", err)
	}

	// Edit the calculator after the fact.
	calc.Steps[0].Fields[1].Hours = 99
	if err := calculators.Update(calc); err != nil {
		t.Fatalf("update calculator: %v", err)
	}

	// The stored snapshot keeps its original totals.
	got, err := submissions.FindByID(sub.ID)
	if err != nil {
		t.Fatalf("find submission: %v", err)
	}
	if got == nil {
		t.Fatal("expected submission")
	}
	if got.TotalHours != 50 || got.TotalPrice != 4000 {
		t.Errorf("totals changed: hours %v price %v", got.TotalHours, got.TotalPrice)
	}
	if len(got.Selections) != 2 {
		t.Errorf("selections: got %d, want 2", len(got.Selections))
	}

	listed, err := submissions.ListByCalculator(calc.ID)
	if err != nil {
		t.Fatalf("list submissions: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("listed: got %d, want 1", len(listed))
	}
}

func TestWishlistDuplicateAndNotify(t *testing.T) {
	db := testDB(t)
	products := NewProductStore(db)
	wishlists := NewWishlistStore(db)

	product, err := products.Create(&models.Product{Name: "Test Wishlist Widget", Active: true})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM wishlists WHERE product_id = $1", product.ID)
		db.Exec("DELETE FROM products WHERE id = $1", product.ID)
	})

	entry, err := wishlists.Add("Ana@Example.COM ", product.ID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if entry.Email != "ana@example.com" {
		t.Errorf("email normalization: got %q", entry.Email)
	}

	// Same email for the same product is rejected.
	if _, err := wishlists.Add("ana@example.com", product.ID); err != ErrDuplicateEntry {
		t.Errorf("duplicate add: got %v, want ErrDuplicateEntry", err)
	}

	// A different email is fine.
	if _, err := wishlists.Add("bob@example.com", product.ID); err != nil {
		t.Fatalf("second add: %v", err)
	}

	pending, err := wishlists.PendingByProduct(product.ID)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending: got %d, want 2", len(pending))
	}

	if err := wishlists.MarkNotified([]uuid.UUID{pending[0].ID}); err != nil {
		t.Fatalf("mark notified: %v", err)
	}

	pending, err = wishlists.PendingByProduct(product.ID)
	if err != nil {
		t.Fatalf("pending after notify: %v", err)
	}
	if len(pending) != 1 || pending[0].Email != "bob@example.com" {
		t.Errorf("pending after notify: got %+v", pending)
	}
}

func TestUserAuthenticate(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	created, err := users.Create("auth-test@example.com", "s3cret-pass", "Auth Tester", "admin")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", created.ID) })

	u, err := users.Authenticate("auth-test@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u == nil {
		t.Fatal("expected successful authentication")
	}

	// Wrong password and unknown email both come back nil without error.
	u, err = users.Authenticate("auth-test@example.com", "wrong")
	if err != nil || u != nil {
		t.Errorf("wrong password: got %v, %v", u, err)
	}
	u, err = users.Authenticate("nobody@example.com", "s3cret-pass")
	if err != nil || u != nil {
		t.Errorf("unknown email: got %v, %v", u, err)
	}
}
