package component

// Name is the authored identifier used when exporting a level.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
