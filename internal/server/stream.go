package server

import (
	"encoding/json"
	"log"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/icdkit/icdgraph/internal/encode"
	"github.com/icdkit/icdgraph/internal/graph"
	"github.com/icdkit/icdgraph/internal/layout"
	"github.com/icdkit/icdgraph/internal/lib"
)

// All of the websocket messages sent by graphStream are text.
var t = websocket.TextMessage

// graphStream writes graph, position and lifecycle messages for the frontend.
// Node ids are mapped to small numeric keys, which is what the graphology
// renderer on the other end wants.
type graphStream struct {
	ws     lib.ThreadSafeWebSocket
	hasher *lib.StrHasher
}

func newGraphStream(ws lib.ThreadSafeWebSocket) *graphStream {
	return &graphStream{
		ws:     ws,
		hasher: lib.NewStrHasher(),
	}
}

type wsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type wsNodeData struct {
	Key        string           `json:"key"`
	Attributes wsNodeAttributes `json:"attributes"`
}

type wsNodeAttributes struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

type wsEdgeData struct {
	Key  string  `json:"key"`
	From string  `json:"from"`
	To   string  `json:"to"`
	Size float64 `json:"size"`
}

type wsPositionData struct {
	Key string  `json:"key"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

func (s *graphStream) send(msgType string, data interface{}) {
	payload, err := json.Marshal(wsMessage{Type: msgType, Data: data})
	if err != nil {
		log.Print("ws marshal err:", err)
		return
	}
	if err := s.ws.WriteMessage(t, payload); err != nil {
		log.Print("ws.WriteMessage err:", err)
	}
}

func (s *graphStream) key(nodeID string) string {
	return strconv.Itoa(s.hasher.Hash(nodeID))
}

// sendGraph streams every node (with its position and draw attributes), then
// every edge, then a done marker.
func (s *graphStream) sendGraph(g *graph.Graph, positions layout.Positions) {
	scale := encode.NewEdgeScale(g)

	for _, n := range g.Nodes {
		p := positions[n.ID]
		s.send("node", wsNodeData{
			Key: s.key(n.ID),
			Attributes: wsNodeAttributes{
				Label: n.Label,
				X:     p.X,
				Y:     p.Y,
				Size:  encode.NodeRadius(n),
				Color: encode.NodeColor(n.Type),
			},
		})
	}

	for i, e := range g.Edges {
		s.send("edge", wsEdgeData{
			Key:  strconv.Itoa(i + 1),
			From: s.key(e.Source),
			To:   s.key(e.Target),
			Size: scale.Width(e.Weight),
		})
	}

	s.send("done", map[string]int{"nodes": len(g.Nodes), "edges": len(g.Edges)})
}

// sendPositions streams fresh positions for an already-sent graph.
func (s *graphStream) sendPositions(g *graph.Graph, positions layout.Positions) {
	for _, n := range g.Nodes {
		p := positions[n.ID]
		s.send("position", wsPositionData{Key: s.key(n.ID), X: p.X, Y: p.Y})
	}
	s.send("done", map[string]int{"nodes": len(g.Nodes), "edges": len(g.Edges)})
}
