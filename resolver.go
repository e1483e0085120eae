package ledgerval

import (
	"sort"

	"github.com/okonma/ledgerval/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultMaxDepth is the default bound on the number of intermediate
// instruments a price resolution may traverse.
const DefaultMaxDepth = 5

// MaxDepthLimit caps the resolver depth by contract; the recursion must
// terminate even for pathological price graphs.
const MaxDepthLimit = 10

// ResolvedPrice is the outcome of a successful price resolution. It is a
// derived value, not a ledger entry.
type ResolvedPrice struct {
	Ticker    string
	Currency  string
	AsOf      date.Date
	Price     decimal.Decimal
	PathDepth int // number of intermediate instruments on the conversion path
}

// priceEdge is one dated conversion rate observed in the ledger: one unit
// of the indexing quantity type costs 'price' units of 'costType'.
type priceEdge struct {
	on       date.Date
	costType string
	price    decimal.Decimal
}

type priceKey struct {
	ticker   string
	currency string
	asOf     date.Date
}

type resolution struct {
	price decimal.Decimal
	depth int
	found bool
}

// PriceGraph answers "price of instrument X in terms of Y at or before date
// D" by walking the dated price edges observed in a ledger, recursing
// through intermediate instruments up to a depth bound.
//
// A graph is built once from an immutable snapshot of entries and memoizes
// resolutions, so one instance must not be shared across goroutines.
type PriceGraph struct {
	edges    map[string][]priceEdge // by quantity type, chronological
	maxDepth int
	memo     map[priceKey]resolution
	log      zerolog.Logger
}

// NewPriceGraph builds a price graph from the PriceUpdate entries found in
// 'entries'; entries of other kinds are ignored.
func NewPriceGraph(entries []Entry) *PriceGraph {
	g := &PriceGraph{
		edges:    make(map[string][]priceEdge),
		maxDepth: DefaultMaxDepth,
		memo:     make(map[priceKey]resolution),
		log:      zerolog.Nop(),
	}
	for _, e := range entries {
		if e.Kind != PriceUpdate || !e.Cost.Valid {
			continue
		}
		g.edges[e.QuantityType] = append(g.edges[e.QuantityType], priceEdge{
			on:       e.Date,
			costType: e.CostType,
			price:    e.Cost.Decimal,
		})
	}
	for ticker := range g.edges {
		edges := g.edges[ticker]
		sort.SliceStable(edges, func(i, j int) bool { return edges[i].on.Before(edges[j].on) })
	}
	return g
}

// WithMaxDepth sets the resolver depth bound, clamped to MaxDepthLimit.
// Values below 1 reset the default.
func (g *PriceGraph) WithMaxDepth(depth int) *PriceGraph {
	switch {
	case depth < 1:
		g.maxDepth = DefaultMaxDepth
	case depth > MaxDepthLimit:
		g.maxDepth = MaxDepthLimit
	default:
		g.maxDepth = depth
	}
	return g
}

// WithLogger sets the logger used for resolution diagnostics.
func (g *PriceGraph) WithLogger(log zerolog.Logger) *PriceGraph {
	g.log = log
	return g
}

// Resolve returns the price of one unit of 'ticker' expressed in 'currency'
// as of 'asOf'. The boolean reports whether any conversion path was found:
// a zero price with true is a legitimate price, false means "no price", and
// the two are never conflated. Absence of a price is an expected outcome,
// not an error.
func (g *PriceGraph) Resolve(ticker, currency string, asOf date.Date) (decimal.Decimal, bool) {
	r, ok := g.ResolvePrice(ticker, currency, asOf)
	return r.Price, ok
}

// ResolvePrice is like Resolve but also reports the conversion path depth.
func (g *PriceGraph) ResolvePrice(ticker, currency string, asOf date.Date) (ResolvedPrice, bool) {
	price, hops, found := g.resolve(ticker, currency, asOf, 0)
	if !found {
		g.log.Debug().
			Str("ticker", ticker).
			Str("currency", currency).
			Stringer("as_of", asOf).
			Msg("no conversion path")
		return ResolvedPrice{}, false
	}
	return ResolvedPrice{
		Ticker:    ticker,
		Currency:  currency,
		AsOf:      asOf,
		Price:     price,
		PathDepth: hops,
	}, true
}

func (g *PriceGraph) resolve(ticker, currency string, asOf date.Date, depth int) (decimal.Decimal, int, bool) {
	if ticker == currency {
		return decimal.NewFromInt(1), 0, true
	}

	key := priceKey{ticker, currency, asOf}
	// A memoized miss is only valid with the full depth budget; a deeper
	// branch might have given up earlier than a top-level call would.
	if r, ok := g.memo[key]; ok && (r.found || depth == 0) {
		return r.price, r.depth, r.found
	}

	// Restrict to edges observed at or before asOf. The edges are
	// chronological, so this is the prefix up to the first later edge.
	all := g.edges[ticker]
	n := sort.Search(len(all), func(i int) bool { return all[i].on.After(asOf) })
	if n == 0 {
		if depth == 0 {
			g.memo[key] = resolution{}
		}
		return decimal.Zero, 0, false
	}
	restricted := all[:n]

	// Direct edge: the most recent one quoting the target currency.
	for i := n - 1; i >= 0; i-- {
		if restricted[i].costType == currency {
			r := resolution{price: restricted[i].price, found: true}
			g.memo[key] = r
			return r.price, 0, true
		}
	}

	// Indirect edge: try each distinct quoted cost type as an intermediate,
	// in observation order. The first cost type yielding a successful
	// two-hop resolution wins; the search is not exhaustive and does not
	// prefer shorter or more recent paths.
	depth++
	if depth < g.maxDepth {
		seen := make(map[string]struct{}, len(restricted))
		for _, edge := range restricted {
			option := edge.costType
			if _, dup := seen[option]; dup {
				continue
			}
			seen[option] = struct{}{}

			hop, hopDepth, ok := g.resolve(option, currency, asOf, depth)
			if !ok {
				continue
			}
			base, baseDepth, ok := g.resolve(ticker, option, asOf, depth)
			if !ok {
				continue
			}
			r := resolution{price: base.Mul(hop), depth: 1 + max(hopDepth, baseDepth), found: true}
			g.memo[key] = r
			return r.price, r.depth, true
		}
	}

	if depth == 1 { // entered with the full budget
		g.memo[key] = resolution{}
	}
	return decimal.Zero, 0, false
}
