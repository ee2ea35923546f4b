package backend

import "fmt"

// Call records one page-backend invocation, used by Recording to give tests
// a structural diff target for go-cmp.
type Call struct {
	Name string
	Args []interface{}
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Recording is an in-memory Page implementation that appends every call it
// receives, for use in interpreter tests that assert on drawing output
// without depending on a real PDF writer.
type Recording struct {
	Calls []Call
}

func (r *Recording) record(name string, args ...interface{}) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recording) BeginPage(widthPt, heightPt float64) {
	r.record("begin_page", widthPt, heightPt)
}

func (r *Recording) SetFont(familyName string, sizePt float64) {
	r.record("set_font", familyName, sizePt)
}

func (r *Recording) SetColor(c Color) {
	r.record("set_color", c)
}

func (r *Recording) SetLineWidth(pt float64) {
	r.record("set_linewidth", pt)
}

func (r *Recording) DrawTextRun(xPt, yPt float64, text string, charSpacePt, hScalePct, risePt float64, mode RenderMode) {
	r.record("draw_text_run", xPt, yPt, text, charSpacePt, hScalePct, risePt, mode)
}

func (r *Recording) DrawLine(x1, y1, x2, y2 float64) {
	r.record("draw_line", x1, y1, x2, y2)
}

func (r *Recording) FillCircle(x, y, rad float64) {
	r.record("fill_circle", x, y, rad)
}

func (r *Recording) FillRect(x, y, w, h float64) {
	r.record("fill_rect", x, y, w, h)
}

func (r *Recording) EndPage() {
	r.record("end_page")
}

func (r *Recording) Finalize() error {
	r.record("finalize")
	return nil
}
