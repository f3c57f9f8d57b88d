package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialSession(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(s.Routes())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

// readUntilDone collects streamed messages by type until the done marker.
func readUntilDone(t *testing.T, c *websocket.Conn) map[string][]json.RawMessage {
	t.Helper()

	received := map[string][]json.RawMessage{}
	for {
		_, payload, err := c.ReadMessage()
		require.NoError(t, err)

		var msg struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(payload, &msg))

		received[msg.Type] = append(received[msg.Type], msg.Data)
		if msg.Type == "done" {
			return received
		}
	}
}

func TestSession_StreamsGraphThenPositions(t *testing.T) {
	s := testServer(t)
	c := dialSession(t, s)

	require.NoError(t, c.WriteJSON(SessionConfig{
		CaseText: "chest pain and dyspnea",
		Width:    1200,
		Height:   800,
	}))

	streamed := readUntilDone(t, c)
	require.NotEmpty(t, streamed["node"])
	require.NotEmpty(t, streamed["edge"])

	var counts struct {
		Nodes int `json:"nodes"`
		Edges int `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(streamed["done"][0], &counts))
	assert.Len(t, streamed["node"], counts.Nodes)
	assert.Len(t, streamed["edge"], counts.Edges)

	var node wsNodeData
	require.NoError(t, json.Unmarshal(streamed["node"][0], &node))
	assert.NotEmpty(t, node.Key)
	assert.NotEmpty(t, node.Attributes.Color)
	assert.Greater(t, node.Attributes.Size, 0.0)

	// A resize gets fresh positions for the same nodes.
	require.NoError(t, c.WriteJSON(resizeMessage{Type: "resize", Width: 900, Height: 600}))

	resized := readUntilDone(t, c)
	assert.Len(t, resized["position"], counts.Nodes)
	assert.Empty(t, resized["node"], "graph is only sent once")

	var pos wsPositionData
	require.NoError(t, json.Unmarshal(resized["position"][0], &pos))
	assert.GreaterOrEqual(t, pos.X, 80.0)
	assert.LessOrEqual(t, pos.X, 900-80.0)
}

func TestSession_StoredCase(t *testing.T) {
	s := testServer(t)

	id, err := s.cases.SaveCase("stored", "chest pain", mustMockResult(t))
	require.NoError(t, err)

	c := dialSession(t, s)
	require.NoError(t, c.WriteJSON(SessionConfig{CaseID: id, Width: 1200, Height: 800}))

	streamed := readUntilDone(t, c)
	assert.NotEmpty(t, streamed["node"])
}

func TestSession_NonResizeMessageEndsSession(t *testing.T) {
	s := testServer(t)
	c := dialSession(t, s)

	require.NoError(t, c.WriteJSON(SessionConfig{CaseText: "chest pain", Width: 1200, Height: 800}))
	readUntilDone(t, c)

	require.NoError(t, c.WriteJSON(map[string]string{"type": "quit"}))

	_, _, err := c.ReadMessage()
	assert.Error(t, err, "server closed the session")
}
