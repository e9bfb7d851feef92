package price

// Wire shapes of the market data provider. Prices may carry fractions (averages),
// and fields are pointers so that absent and zero can be told apart.

type singleResponse struct {
	ItemID         int      `json:"itemID"`
	WorldName      string   `json:"worldName"`
	DCName         string   `json:"dcName"`
	LastUploadTime *int64   `json:"lastUploadTime"`
	MinPriceNQ     *float64 `json:"minPriceNQ"`
	MinPriceHQ     *float64 `json:"minPriceHQ"`
	AveragePriceNQ *float64 `json:"averagePriceNQ"`
	AveragePriceHQ *float64 `json:"averagePriceHQ"`
}

type aggregatedResponse struct {
	Results     []aggregatedResult `json:"results"`
	FailedItems []int              `json:"failedItems"`
}

type aggregatedResult struct {
	ItemID           int               `json:"itemId"`
	NQ               aggregatedQuality `json:"nq"`
	HQ               aggregatedQuality `json:"hq"`
	WorldUploadTimes []worldUploadTime `json:"worldUploadTimes"`
}

type aggregatedQuality struct {
	MinListing       *scopedPrice `json:"minListing"`
	AverageSalePrice *scopedPrice `json:"averageSalePrice"`
	RecentPurchase   *scopedPrice `json:"recentPurchase"`
}

// scopedPrice holds the world-level figure; region and dc figures are ignored.
type scopedPrice struct {
	World *priceAt `json:"world"`
}

type priceAt struct {
	Price     *float64 `json:"price"`
	Timestamp *int64   `json:"timestamp"`
}

type worldUploadTime struct {
	WorldID   int   `json:"worldId"`
	Timestamp int64 `json:"timestamp"`
}

type dataCenterResponse struct {
	Name   string `json:"name"`
	Region string `json:"region"`
	Worlds []int  `json:"worlds"`
}

type worldResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (s *scopedPrice) price() *float64 {
	if s == nil || s.World == nil || s.World.Price == nil || *s.World.Price <= 0 {
		return nil
	}
	return s.World.Price
}

func (s *scopedPrice) timestamp() *int64 {
	if s == nil || s.World == nil || s.World.Timestamp == nil || *s.World.Timestamp <= 0 {
		return nil
	}
	return s.World.Timestamp
}
