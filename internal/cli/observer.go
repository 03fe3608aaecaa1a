package cli

import (
	"context"
	"sync/atomic"

	"github.com/alexanderramin/vitals/internal/llm"
	"github.com/alexanderramin/vitals/internal/service"
)

// VerboseObserver forwards service and LLM events to the wrapped observers
// once Enable has been called. Services are wired before flags are parsed,
// so the switch lives here.
type VerboseObserver struct {
	on       atomic.Bool
	useCases service.UseCaseObserver
	calls    llm.Observer
}

func NewVerboseObserver(useCases service.UseCaseObserver, calls llm.Observer) *VerboseObserver {
	return &VerboseObserver{useCases: useCases, calls: calls}
}

func (v *VerboseObserver) Enable() { v.on.Store(true) }

func (v *VerboseObserver) Enabled() bool { return v.on.Load() }

func (v *VerboseObserver) ObserveUseCase(ctx context.Context, e service.UseCaseEvent) {
	if v.on.Load() && v.useCases != nil {
		v.useCases.ObserveUseCase(ctx, e)
	}
}

// LLM returns an llm.Observer view gated by the same switch.
func (v *VerboseObserver) LLM() llm.Observer {
	return llmGate{v}
}

type llmGate struct{ v *VerboseObserver }

func (g llmGate) OnCallComplete(e llm.LLMCallEvent) {
	if g.v.on.Load() && g.v.calls != nil {
		g.v.calls.OnCallComplete(e)
	}
}
