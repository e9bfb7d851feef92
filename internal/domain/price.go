package domain

// QualityPrice holds market statistics for one quality tier.
// A nil field means the provider reported nothing for it.
type QualityPrice struct {
	Min *int64 `json:"min"`
	Avg *int64 `json:"avg"`
}

// PriceQuote is a point-in-time market snapshot of one item on one server.
type PriceQuote struct {
	ItemID    int          `json:"item_id"`
	Server    string       `json:"server"`
	NQ        QualityPrice `json:"nq"`
	HQ        QualityPrice `json:"hq"`
	UpdatedAt *int64       `json:"updated_at,omitempty"` // seconds since epoch
}

// HasData reports whether any of the four price fields is present.
func (p *PriceQuote) HasData() bool {
	if p == nil {
		return false
	}
	return p.NQ.Min != nil || p.NQ.Avg != nil || p.HQ.Min != nil || p.HQ.Avg != nil
}

// UnitPrice is the valuation of a single unit returned by the bulk price call.
type UnitPrice struct {
	Price     int64  `json:"price"`
	Timestamp *int64 `json:"timestamp,omitempty"`
}

// Datacenter groups the worlds sharing one regional marketplace.
type Datacenter struct {
	Name   string `json:"name"`
	Region string `json:"region"`
	Worlds []int  `json:"worlds"`
}

// World is a single game server.
type World struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
