package types

// Decision is the categorical trading action produced by signal fusion.
type Decision int

const (
	DecisionHold Decision = iota
	DecisionBuy
	DecisionSell
)

func (d Decision) String() string {
	switch d {
	case DecisionBuy:
		return "Buy"
	case DecisionSell:
		return "Sell"
	default:
		return "Hold"
	}
}

// MarshalText lets decisions serialize as their names in JSON and YAML.
func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDecision maps a decision name back to its value. Unknown names
// parse as Hold.
func ParseDecision(s string) Decision {
	switch s {
	case "Buy":
		return DecisionBuy
	case "Sell":
		return DecisionSell
	default:
		return DecisionHold
	}
}
