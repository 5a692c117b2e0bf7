package model

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
)

func TestNewSaleTotals(t *testing.T) {
	cashier := uuid.New()
	items := []SaleItemInput{
		{ProductID: uuid.New(), Quantity: 6, UnitPrice: 100},
		{ProductID: uuid.New(), Quantity: 2, UnitPrice: 49.50},
	}

	sale, err := NewSale(cashier, PaymentCash, items)
	if err != nil {
		t.Fatalf("NewSale failed: %v", err)
	}

	if len(sale.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(sale.Items))
	}

	var sum float64
	for i, item := range sale.Items {
		expected := float64(items[i].Quantity) * items[i].UnitPrice
		if item.Subtotal != expected {
			t.Errorf("item %d: expected subtotal %v, got %v", i, expected, item.Subtotal)
		}
		if item.SaleID != sale.ID {
			t.Errorf("item %d: not linked to sale", i)
		}
		sum += item.Subtotal
	}
	if sale.TotalAmount != sum {
		t.Errorf("total %v does not equal sum of subtotals %v", sale.TotalAmount, sum)
	}
	if sale.TotalAmount != 699 {
		t.Errorf("expected total 699, got %v", sale.TotalAmount)
	}
	if sale.CashierID != cashier {
		t.Error("cashier id not carried onto the sale")
	}
}

func TestNewSaleRejectsEmptyItems(t *testing.T) {
	_, err := NewSale(uuid.New(), PaymentCash, nil)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestNewSaleRejectsBadLines(t *testing.T) {
	cashier := uuid.New()

	cases := []struct {
		name  string
		items []SaleItemInput
	}{
		{"zero quantity", []SaleItemInput{{ProductID: uuid.New(), Quantity: 0, UnitPrice: 10}}},
		{"negative quantity", []SaleItemInput{{ProductID: uuid.New(), Quantity: -1, UnitPrice: 10}}},
		{"negative price", []SaleItemInput{{ProductID: uuid.New(), Quantity: 1, UnitPrice: -0.01}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSale(cashier, PaymentCash, tc.items)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestNewSaleRejectsUnknownPaymentMethod(t *testing.T) {
	items := []SaleItemInput{{ProductID: uuid.New(), Quantity: 1, UnitPrice: 10}}
	if _, err := NewSale(uuid.New(), PaymentMethod("Card"), items); err == nil {
		t.Error("expected error for unknown payment method")
	}
	if _, err := NewSale(uuid.New(), PaymentMobileMoney, items); err != nil {
		t.Errorf("Mobile Money should be accepted: %v", err)
	}
}

func TestSaleNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^SALE-\d{6}-\d{1,3}$`)
	items := []SaleItemInput{{ProductID: uuid.New(), Quantity: 1, UnitPrice: 10}}

	sale, err := NewSale(uuid.New(), PaymentCash, items)
	if err != nil {
		t.Fatalf("NewSale failed: %v", err)
	}
	if !pattern.MatchString(sale.SaleNumber) {
		t.Errorf("unexpected sale number format: %s", sale.SaleNumber)
	}
}

func TestZeroPriceItemAllowed(t *testing.T) {
	items := []SaleItemInput{{ProductID: uuid.New(), Quantity: 3, UnitPrice: 0}}
	sale, err := NewSale(uuid.New(), PaymentCash, items)
	if err != nil {
		t.Fatalf("zero price line should be accepted: %v", err)
	}
	if sale.TotalAmount != 0 {
		t.Errorf("expected total 0, got %v", sale.TotalAmount)
	}
}
