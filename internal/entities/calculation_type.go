package entities

// CalculationType determines how many quantities a cost entry needs and how
// its total is computed.
type CalculationType string

const (
	CalcSimple         CalculationType = "simple"
	CalcTwoDimensional CalculationType = "two_dimensional"
	CalcPieceFitting   CalculationType = "piece_fitting"
	CalcMeterBased     CalculationType = "meter_based"
	CalcAreaBased      CalculationType = "area_based"
	CalcPaintBased     CalculationType = "paint_based"
	CalcCustomCost     CalculationType = "custom_cost"
)

func (t CalculationType) Valid() bool {
	switch t {
	case CalcSimple, CalcTwoDimensional, CalcPieceFitting, CalcMeterBased,
		CalcAreaBased, CalcPaintBased, CalcCustomCost:
		return true
	}
	return false
}

// ParamCount is the number of quantities the user must supply, excluding the
// order quantity. CustomCost takes a directly entered total instead.
func (t CalculationType) ParamCount() int {
	switch t {
	case CalcCustomCost:
		return 0
	case CalcSimple, CalcMeterBased:
		return 1
	default:
		return 2
	}
}

// UsesOrderQuantity reports whether the order's own quantity is shown as a
// read-only reference value when entering this cost.
func (t CalculationType) UsesOrderQuantity() bool {
	switch t {
	case CalcPieceFitting, CalcMeterBased, CalcAreaBased:
		return true
	}
	return false
}
