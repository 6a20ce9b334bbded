package qlog

// category is the qlog event category.
type category uint8

const (
	categoryConnectivity category = iota
	categoryRecovery
	categoryLink
)

func (c category) String() string {
	switch c {
	case categoryConnectivity:
		return "connectivity"
	case categoryRecovery:
		return "recovery"
	case categoryLink:
		return "link"
	default:
		panic("unknown category")
	}
}
