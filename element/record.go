package element

import (
	"strings"

	"github.com/cwbudde/swinglibrary-go/internal/jsonvalue"
)

// Bounds is a component's screen rectangle as the agent reports it.
type Bounds struct {
	X      int
	Y      int
	Width  int
	Height int
}

// State is the component's boolean widget state. Visible is the
// component's own visibility flag; Showing additionally requires every
// ancestor to be visible, so only Visible && Showing means the widget is
// actually on screen. Selected covers both selection and check state;
// for components with no selection model the agent reports it false.
type State struct {
	Visible  bool
	Showing  bool
	Enabled  bool
	Focused  bool
	Selected bool
}

// ElementRecord is everything the client knows about a cached component
// between resolving it and acting on it: identity, class and normalised
// type, the displayable attributes, geometry, and state. Extra carries
// the agent's full property object verbatim for anything not promoted to
// a typed field.
type ElementRecord struct {
	Handle      ComponentHandle
	Locator     string
	ClassName   string
	SimpleName  string
	Toolkit     string
	ElementType string
	Name        string
	Text        string
	Tooltip     string
	Bounds      Bounds
	State       State
	Extra       jsonvalue.Value
}

// SimpleName returns a Java class name without its package qualifier.
func SimpleName(className string) string {
	last := strings.LastIndexByte(className, '.')
	if last < 0 {
		return className
	}
	return className[last+1:]
}

// NewRecord decodes the agent's getElementProperties payload into a
// record for handle. Fields the agent omits stay zero; the simple name
// and normalised element type are derived from the class name when the
// agent does not report them itself.
func NewRecord(handle ComponentHandle, locator string, props jsonvalue.Value) ElementRecord {
	className, _ := props.Get("class").AsString()
	simple, ok := props.Get("simpleName").AsString()
	if !ok {
		simple = SimpleName(className)
	}
	elementType, ok := props.Get("elementType").AsString()
	if !ok {
		elementType = TypeOf(simple)
	}
	toolkit, _ := props.Get("toolkit").AsString()
	name, _ := props.Get("name").AsString()
	text, _ := props.Get("text").AsString()
	tooltip, _ := props.Get("tooltip").AsString()

	b := props.Get("bounds")
	x, _ := b.Get("x").AsNumber()
	y, _ := b.Get("y").AsNumber()
	w, _ := b.Get("width").AsNumber()
	h, _ := b.Get("height").AsNumber()

	visible, _ := props.Get("visible").AsBool()
	showing, _ := props.Get("showing").AsBool()
	enabled, _ := props.Get("enabled").AsBool()
	focused, _ := props.Get("focused").AsBool()
	selected, ok := props.Get("selected").AsBool()
	if !ok {
		selected, _ = props.Get("checked").AsBool()
	}

	return ElementRecord{
		Handle:      handle,
		Locator:     locator,
		ClassName:   className,
		SimpleName:  simple,
		Toolkit:     toolkit,
		ElementType: elementType,
		Name:        name,
		Text:        text,
		Tooltip:     tooltip,
		Bounds:      Bounds{X: int(x), Y: int(y), Width: int(w), Height: int(h)},
		State:       State{Visible: visible, Showing: showing, Enabled: enabled, Focused: focused, Selected: selected},
		Extra:       props,
	}
}
