package model

// FlowHop describes one stage of a multi-account fund movement: how many
// transactions matched the hop's pattern and what they total.
type FlowHop struct {
	Label string
	Count int
	Total float64
}

// FlowSummary aggregates a three-hop fund movement pattern. It is derived
// on demand from three classified transaction sets and is never persisted
// independently of them.
type FlowSummary struct {
	Withdrawals FlowHop
	Deposits    FlowHop
	Transfers   FlowHop
}

// Hops returns the hops in movement order.
func (s FlowSummary) Hops() []FlowHop {
	return []FlowHop{s.Withdrawals, s.Deposits, s.Transfers}
}
