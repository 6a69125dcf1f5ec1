package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var orderRowColumns = []string{
	"id", "user_id", "order_number", "subtotal", "gift_discount", "delivery_fee", "total_amount",
	"status", "payment_method", "payment_status", "shipping_address", "billing_address", "notes",
	"is_gift", "gift_message", "gift_wrap", "delivery_type",
	"tracking_number", "courier_name", "estimated_delivery", "actual_delivery",
	"delivery_rating", "delivery_review", "created_at", "updated_at",
}

func orderRow(id int, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(orderRowColumns).
		AddRow(id, 7, "LSM202608290042", "2400", "0", "0", "2400",
			status, PaymentCard, PaymentStatusPaid, "12 Gulshan Ave", "12 Gulshan Ave", "",
			false, "", false, DeliveryStandard,
			"", "", nil, nil,
			0, "", now, now)
}

func TestUpdateStatus_Applies(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("UPDATE orders SET status").
		WithArgs(5, StatusPending, StatusShipped).
		WillReturnRows(orderRow(5, StatusShipped))

	ord, err := repo.UpdateStatus(context.Background(), 5, StatusPending, StatusShipped)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if ord.Status != StatusShipped {
		t.Fatalf("status = %q, want shipped", ord.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateStatus_DeliveredStampsTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// arriving at delivered must use the keep-first-stamp form
	mock.ExpectQuery(`actual_delivery = COALESCE\(actual_delivery, NOW\(\)\)`).
		WithArgs(5, StatusShipped, StatusDelivered).
		WillReturnRows(orderRow(5, StatusDelivered))

	if _, err := repo.UpdateStatus(context.Background(), 5, StatusShipped, StatusDelivered); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateStatus_StaleGuard(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// the guarded UPDATE matches nothing because the status already moved
	mock.ExpectQuery("UPDATE orders SET status").
		WithArgs(5, StatusPending, StatusShipped).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	// the repo then distinguishes "gone" from "moved underneath us"
	mock.ExpectQuery("FROM orders WHERE id").
		WithArgs(5).
		WillReturnRows(orderRow(5, StatusCancelled))
	mock.ExpectQuery("FROM order_items").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "unit_price", "line_total"}))

	_, err = repo.UpdateStatus(context.Background(), 5, StatusPending, StatusShipped)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateStatus_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("UPDATE orders SET status").
		WithArgs(99, StatusPending, StatusShipped).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))
	mock.ExpectQuery("FROM orders WHERE id").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	_, err = repo.UpdateStatus(context.Background(), 99, StatusPending, StatusShipped)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStats_Query(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"users", "products", "orders", "revenue"}).
		AddRow(12, 40, 9, "18350.50")
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalUsers != 12 || stats.TotalOrders != 9 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.TotalRevenue.String() != "18350.5" {
		t.Fatalf("revenue = %s", stats.TotalRevenue)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
