package events

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundvault/fundvaultd/internal/core/types"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(payload, &ev))
	return ev
}

func testAddr(t *testing.T, s string) types.Address {
	t.Helper()
	a, err := types.ParseAddress(s)
	require.NoError(t, err)
	return a
}

func TestHubDeliversEvents(t *testing.T) {
	hub, err := NewHub(16)
	require.NoError(t, err)
	defer hub.Close()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)

	// Give the hub a moment to register the subscriber.
	time.Sleep(50 * time.Millisecond)

	funder := testAddr(t, "0x0000000000000000000000000000000000000001")
	hub.Publish(Event{
		Type:      TypeContribution,
		Account:   funder,
		Native:    "100000000000000000",
		Reference: "200000000000000000000",
		Time:      time.Now(),
	})

	ev := readEvent(t, conn)
	assert.Equal(t, TypeContribution, ev.Type)
	assert.Equal(t, funder, ev.Account)
	assert.Equal(t, uint64(1), ev.Seq)
}

func TestHubReplaysRecentEvents(t *testing.T) {
	hub, err := NewHub(16)
	require.NoError(t, err)
	defer hub.Close()

	owner := testAddr(t, "0x00112233445566778899aabbccddeeff00112233")
	hub.Publish(Event{Type: TypeContribution, Account: owner, Native: "1"})
	hub.Publish(Event{Type: TypeWithdrawal, Account: owner, Native: "1", Funders: 1})

	srv := httptest.NewServer(hub)
	defer srv.Close()

	// A subscriber connecting after the fact still sees both events.
	conn := dial(t, srv)
	first := readEvent(t, conn)
	second := readEvent(t, conn)

	assert.Equal(t, uint64(1), first.Seq)
	assert.Equal(t, TypeContribution, first.Type)
	assert.Equal(t, uint64(2), second.Seq)
	assert.Equal(t, TypeWithdrawal, second.Type)
}

func TestHubSequencesMonotonically(t *testing.T) {
	hub, err := NewHub(4)
	require.NoError(t, err)
	defer hub.Close()

	addr := testAddr(t, "0x0000000000000000000000000000000000000002")
	for i := 0; i < 10; i++ {
		hub.Publish(Event{Type: TypeContribution, Account: addr, Native: "1"})
	}

	srv := httptest.NewServer(hub)
	defer srv.Close()

	// Replay ring holds only the last 4.
	conn := dial(t, srv)
	ev := readEvent(t, conn)
	assert.Equal(t, uint64(7), ev.Seq)
}

func TestHubPublishAfterClose(t *testing.T) {
	hub, err := NewHub(4)
	require.NoError(t, err)
	hub.Close()

	// Must not panic.
	hub.Publish(Event{Type: TypeContribution})
}
