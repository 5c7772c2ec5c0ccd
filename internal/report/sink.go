package report

import "context"

// Sink persists a run's result rows. Both rows are written once per run,
// after the simulation has finished.
type Sink interface {
	WriteOrders(ctx context.Context, runID string, rows []OrderRow) error
	WriteCouriers(ctx context.Context, runID string, rows []CourierRow) error
}

// MemorySink is a Sink that keeps rows in process memory, for callers that
// only want the Summarize statistics without persistence.
type MemorySink struct {
	Orders   map[string][]OrderRow
	Couriers map[string][]CourierRow
}

func NewMemorySink() *MemorySink {
	return &MemorySink{
		Orders:   make(map[string][]OrderRow),
		Couriers: make(map[string][]CourierRow),
	}
}

func (s *MemorySink) WriteOrders(_ context.Context, runID string, rows []OrderRow) error {
	s.Orders[runID] = append([]OrderRow(nil), rows...)
	return nil
}

func (s *MemorySink) WriteCouriers(_ context.Context, runID string, rows []CourierRow) error {
	s.Couriers[runID] = append([]CourierRow(nil), rows...)
	return nil
}
