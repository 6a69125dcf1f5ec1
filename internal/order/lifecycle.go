package order

// statusRank orders the forward lattice pending -> processing -> shipped ->
// delivered. Cancelled sits outside the lattice.
var statusRank = map[string]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// CanTransition reports whether an admin may move an order from one status
// to another. Forward moves of any distance are allowed; cancellation is
// only reachable from pending or processing; delivered and cancelled are
// terminal. Re-asserting the current status is an idempotent no-op.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	if to == StatusCancelled {
		return from == StatusPending || from == StatusProcessing
	}
	fromRank, fromOK := statusRank[from]
	toRank, toOK := statusRank[to]
	return fromOK && toOK && toRank > fromRank
}
