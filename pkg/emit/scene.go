package emit

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/matzehuels/deckdraw/pkg/geom"
	"github.com/matzehuels/deckdraw/pkg/route"
)

// Scene is a recorded emitter output: every shape, connector, and text
// box with its final geometry and styling. It is both the JSON artifact
// format and the document shape persisted by the layout store.
type Scene struct {
	Width      int64            `json:"width" bson:"width"`
	Height     int64            `json:"height" bson:"height"`
	Shapes     []SceneShape     `json:"shapes" bson:"shapes"`
	Connectors []SceneConnector `json:"connectors" bson:"connectors"`
	Texts      []SceneText      `json:"texts" bson:"texts"`
}

// LineProps records stroke styling applied via SetLine.
type LineProps struct {
	Color   string  `json:"color" bson:"color"`
	WidthPt float64 `json:"width_pt" bson:"width_pt"`
	Dash    Dash    `json:"dash" bson:"dash"`
}

// SceneShape is one recorded shape.
type SceneShape struct {
	Handle Handle     `json:"handle" bson:"handle"`
	Kind   ShapeKind  `json:"kind" bson:"kind"`
	Rect   geom.Rect  `json:"rect" bson:"rect"`
	Fill   string     `json:"fill,omitempty" bson:"fill,omitempty"`
	Line   *LineProps `json:"line,omitempty" bson:"line,omitempty"`
}

// SceneAttachment records one bound connector end.
type SceneAttachment struct {
	Shape Handle     `json:"shape" bson:"shape"`
	Site  route.Site `json:"site" bson:"site"`
}

// SceneConnector is one recorded connector.
type SceneConnector struct {
	Handle      Handle            `json:"handle" bson:"handle"`
	Kind        route.Kind        `json:"kind" bson:"kind"`
	Start       geom.Point        `json:"start" bson:"start"`
	End         geom.Point        `json:"end" bson:"end"`
	Line        *LineProps        `json:"line,omitempty" bson:"line,omitempty"`
	Arrow       Arrow             `json:"arrow" bson:"arrow"`
	Attachments []SceneAttachment `json:"attachments,omitempty" bson:"attachments,omitempty"`
}

// SceneText is one recorded text box.
type SceneText struct {
	Handle  Handle      `json:"handle" bson:"handle"`
	Rect    geom.Rect   `json:"rect" bson:"rect"`
	Text    string      `json:"text" bson:"text"`
	Options TextOptions `json:"options" bson:"options"`
}

// Recorder is an Emitter that captures calls into a Scene. It is the
// reference emitter for tests and the source of the JSON artifact.
// Attachment support is configurable so composer degradation paths can
// be exercised.
type Recorder struct {
	scene      Scene
	attachable bool

	shapeIdx map[Handle]int
	connIdx  map[Handle]int
}

// NewRecorder creates a recording emitter for a canvas of the given
// size. When attachable is false the recorder reports no attachment
// capability and the composer draws unattached line segments.
func NewRecorder(width, height int64, attachable bool) *Recorder {
	return &Recorder{
		scene:      Scene{Width: width, Height: height},
		attachable: attachable,
		shapeIdx:   map[Handle]int{},
		connIdx:    map[Handle]int{},
	}
}

// Scene returns the recorded scene.
func (r *Recorder) Scene() Scene { return r.scene }

// MarshalJSON encodes the recorded scene.
func (r *Recorder) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(r.scene, "", "  ")
}

func (r *Recorder) AddShape(kind ShapeKind, rect geom.Rect) Handle {
	h := newHandle()
	r.shapeIdx[h] = len(r.scene.Shapes)
	r.scene.Shapes = append(r.scene.Shapes, SceneShape{Handle: h, Kind: kind, Rect: rect})
	return h
}

func (r *Recorder) AddConnector(kind route.Kind, start, end geom.Point) Handle {
	h := newHandle()
	r.connIdx[h] = len(r.scene.Connectors)
	r.scene.Connectors = append(r.scene.Connectors, SceneConnector{
		Handle: h, Kind: kind, Start: start, End: end,
	})
	return h
}

func (r *Recorder) AttachConnector(conn Handle, shape Handle, site route.Site) {
	if i, ok := r.connIdx[conn]; ok {
		r.scene.Connectors[i].Attachments = append(r.scene.Connectors[i].Attachments,
			SceneAttachment{Shape: shape, Site: site})
	}
}

func (r *Recorder) AddTextBox(rect geom.Rect, text string, opts TextOptions) Handle {
	h := newHandle()
	r.scene.Texts = append(r.scene.Texts, SceneText{Handle: h, Rect: rect, Text: text, Options: opts})
	return h
}

func (r *Recorder) SetFill(shape Handle, color string) {
	if i, ok := r.shapeIdx[shape]; ok {
		r.scene.Shapes[i].Fill = color
	}
}

func (r *Recorder) SetLine(h Handle, color string, widthPt float64, dash Dash) {
	props := &LineProps{Color: color, WidthPt: widthPt, Dash: dash}
	if i, ok := r.shapeIdx[h]; ok {
		r.scene.Shapes[i].Line = props
		return
	}
	if i, ok := r.connIdx[h]; ok {
		r.scene.Connectors[i].Line = props
	}
}

func (r *Recorder) SetArrow(conn Handle, arrow Arrow) {
	if i, ok := r.connIdx[conn]; ok {
		r.scene.Connectors[i].Arrow = arrow
	}
}

func (r *Recorder) SupportsAttachment() bool { return r.attachable }

func newHandle() Handle { return Handle(uuid.NewString()) }
