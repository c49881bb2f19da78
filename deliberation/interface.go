package deliberation

//go:generate mockgen -typed -package=deliberation -destination=./mocks.go -source=./interface.go

// Tracer observes every record appended to a run history.
type Tracer interface {
	OnRound(RoundRecord)
}

type noopTracer struct{}

func (noopTracer) OnRound(RoundRecord) {}
