package mcts

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/awalterschulze/gographviz"
)

// dotNode is the view of one node the label template renders.
type dotNode struct {
	*Node
	UCB1 float32
}

func (d *dotNode) MoveText() string {
	if !d.parent.isValid() {
		return "root"
	}
	return fmt.Sprintf("%v", d.move)
}

func (d *dotNode) Playouts() string {
	return fmt.Sprintf("(%d, %d, %d)", d.stats.Total, d.stats.Wins[0], d.stats.Wins[1])
}

// ToDot dumps the whole tree in graphviz dot format: one table node
// per arena entry, edges along the committed game line drawn red.
func (t *MCTS) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("gametree"); err != nil {
		panic(err)
	}
	g.SetDir(true)

	var buf bytes.Buffer
	for i := range t.nodes {
		n := &t.nodes[i]
		d := &dotNode{Node: n}
		if n.parent.isValid() {
			d.UCB1 = t.ucb1(n.id)
		}
		tmpl.Execute(&buf, d)
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		g.AddNode("gametree", fmt.Sprintf("n%v", n.id), attrs)
		buf.Reset()

		if !n.parent.isValid() {
			continue
		}
		edgeAttrs := map[string]string{"color": "\"#696969\""}
		if n.claimed {
			edgeAttrs["color"] = "\"#ff0000\""
			edgeAttrs["penwidth"] = "4"
		}
		g.AddEdge(fmt.Sprintf("n%v", n.parent), fmt.Sprintf("n%v", n.id), true, edgeAttrs)
	}
	return g.String()
}

const tmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Move</TD><TD>{{.MoveText}}</TD></TR>
<TR><TD>Value</TD><TD>{{.Move.Value}}</TD></TR>
<TR><TD>Playouts</TD><TD>{{.Playouts}}</TD></TR>
<TR><TD>UCB1</TD><TD>{{printf "%.3f" .UCB1}}</TD></TR>
</TABLE>
>
`

var tmpl *template.Template

func init() {
	tmpl = template.Must(template.New("node").Parse(tmplRaw))
}
