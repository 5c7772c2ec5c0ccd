package report

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSink writes result rows to the run_orders and run_couriers tables
// (see migrations/0001_report.sql), one run at a time.
type PostgresSink struct {
	db *pgxpool.Pool
}

func NewPostgresSink(db *pgxpool.Pool) *PostgresSink {
	return &PostgresSink{db: db}
}

func (s *PostgresSink) WriteOrders(ctx context.Context, runID string, rows []OrderRow) error {
	batch := make([][]any, len(rows))
	for i, r := range rows {
		batch[i] = []any{
			runID, r.OrderID, r.Status, r.PlacementTime, r.ReadyTime,
			r.PickupTime, r.DeliveryTime, r.ClickToDoor, r.ReadyToPickup, r.BundleSize,
		}
	}
	_, err := s.db.CopyFrom(ctx,
		pgx.Identifier{"run_orders"},
		[]string{
			"run_id", "order_id", "status", "placement_time", "ready_time",
			"pickup_time", "delivery_time", "click_to_door", "ready_to_pickup", "bundle_size",
		},
		pgx.CopyFromRows(batch),
	)
	return err
}

func (s *PostgresSink) WriteCouriers(ctx context.Context, runID string, rows []CourierRow) error {
	batch := make([][]any, len(rows))
	for i, r := range rows {
		batch[i] = []any{
			runID, r.CourierID, r.OrdersDelivered, r.TotalDistanceKm, r.ShiftDurationHours, r.Earnings,
		}
	}
	_, err := s.db.CopyFrom(ctx,
		pgx.Identifier{"run_couriers"},
		[]string{
			"run_id", "courier_id", "orders_delivered", "total_distance_km", "shift_duration_hours", "earnings",
		},
		pgx.CopyFromRows(batch),
	)
	return err
}
