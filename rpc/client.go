// Package rpc implements the line-delimited JSON-RPC 2.0 client that talks
// to the in-process Java agent: one TCP connection, one request
// in flight at a time, request ids correlating calls to responses, and
// reconnect-on-timeout so a single slow call does not wedge the session.
package rpc

import (
	"bufio"
	"encoding/json"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cwbudde/swinglibrary-go/errs"
	"github.com/cwbudde/swinglibrary-go/internal/jsonvalue"
	"github.com/cwbudde/swinglibrary-go/internal/rlog"
)

const maxLineBytes = 16 * 1024 * 1024

type wireRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Method  string          `json:"method"`
	Params  jsonvalue.Value `json:"params"`
}

type wireError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    jsonvalue.Value `json:"data"`
}

type wireResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int64          `json:"id"`
	Result  jsonvalue.Value `json:"result"`
	Error   *wireError      `json:"error"`
}

// Client is a single-connection JSON-RPC client. A zero value is not
// usable; construct with Dial.
type Client struct {
	addr    string
	timeout time.Duration
	log     *rlog.Logger

	mu     sync.Mutex // serializes Call: one request in flight at a time
	conn   net.Conn
	reader *bufio.Scanner
	nextID int64
}

// Dial connects to addr (host:port) with the given per-call timeout and
// confirms liveness with a "ping" call before returning — opening the TCP
// socket alone doesn't prove the agent is actually accepting requests. A ping
// failure tears the connection back down rather than handing the caller a
// Client that looks connected but cannot actually round-trip a request.
func Dial(addr string, timeout time.Duration, log *rlog.Logger) (*Client, error) {
	c := &Client{addr: addr, timeout: timeout, log: log}
	if err := c.connect(); err != nil {
		return nil, err
	}
	if _, err := c.Call("ping", jsonvalue.Object(nil)); err != nil {
		c.teardown()
		return nil, err
	}
	return c, nil
}

func (c *Client) connect() error {
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return &errs.ConnectionError{Message: err.Error(), Recoverable: true}
	}
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4096), maxLineBytes)
	c.conn = conn
	c.reader = scanner
	return nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Connected reports whether the client currently holds a live connection.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Call sends method(params) and blocks for the matching response, or an
// error. A recoverable *errs.ConnectionError (write failure, closed or
// broken socket) redials and resends the same request exactly once,
// papering over a transient agent hiccup or socket reset without silently
// retrying forever; only the second failure is returned to the caller. A
// read timeout returns *errs.ActionTimeout without a resend, and the next
// Call redials.
func (c *Client) Call(method string, params jsonvalue.Value) (jsonvalue.Value, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, err := c.callOnce(method, params)
	connErr, recoverable := err.(*errs.ConnectionError)
	if !recoverable || !connErr.Recoverable {
		return result, err
	}
	if reErr := c.connect(); reErr != nil {
		return jsonvalue.Null, reErr
	}
	return c.callOnce(method, params)
}

// callOnce performs one write/read round trip over the current connection,
// reconnecting first if the connection was never established or was torn
// down by a prior failure. Callers hold c.mu.
func (c *Client) callOnce(method string, params jsonvalue.Value) (jsonvalue.Value, error) {
	if c.conn == nil {
		if err := c.connect(); err != nil {
			return jsonvalue.Null, err
		}
	}

	id := atomic.AddInt64(&c.nextID, 1)
	req := wireRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params}
	line, err := json.Marshal(req)
	if err != nil {
		return jsonvalue.Null, &errs.ProtocolError{Code: -32700, Message: "failed to encode request: " + err.Error()}
	}

	if c.log != nil {
		c.log.Debugf("-> %s", line)
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	if _, err := c.conn.Write(append(line, '\n')); err != nil {
		c.teardown()
		return jsonvalue.Null, &errs.ConnectionError{Message: err.Error(), Recoverable: true}
	}

	_ = c.conn.SetReadDeadline(time.Now().Add(c.timeout))
	if !c.reader.Scan() {
		scanErr := c.reader.Err()
		c.teardown()
		if scanErr == nil {
			return jsonvalue.Null, &errs.ConnectionError{Message: "connection closed by agent", Recoverable: true}
		}
		if ne, ok := scanErr.(net.Error); ok && ne.Timeout() {
			return jsonvalue.Null, &errs.ActionTimeout{Operation: method, Seconds: c.timeout.Seconds()}
		}
		return jsonvalue.Null, &errs.ConnectionError{Message: scanErr.Error(), Recoverable: true}
	}

	raw := c.reader.Bytes()
	if c.log != nil {
		c.log.Debugf("<- %s", raw)
	}

	var resp wireResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.teardown()
		return jsonvalue.Null, &errs.ProtocolError{Code: -32700, Message: "malformed response: " + err.Error()}
	}
	if resp.ID == nil || *resp.ID != id {
		c.teardown()
		return jsonvalue.Null, &errs.ProtocolError{Code: -32600, Message: "response id mismatch"}
	}
	if resp.Error != nil {
		return jsonvalue.Null, mapWireError(resp.Error)
	}
	return resp.Result, nil
}

// teardown closes and forgets the current connection after a framing or
// transport failure, so the next Call redials instead of reusing a
// connection left in an unknown state.
func (c *Client) teardown() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = nil
}

// mapWireError recodes a JSON-RPC error object into the domain error it
// represents. The domain codes in the reserved -32000..-32003 range
// are recoded to their typed errs equivalents so the assertion
// engine's retry loop (errs.IsRetryable) and callers can recognise them
// without depending on the rpc package or parsing messages.
func mapWireError(e *wireError) error {
	switch e.Code {
	case codeElementNotFound:
		return &errs.ElementNotFound{Locator: e.Message}
	case codeStaleHandle:
		handle, _ := e.Data.AsNumber()
		return &errs.StaleHandle{Handle: int64(handle)}
	case codeAgentBusy:
		return &errs.ProtocolError{Code: e.Code, Message: e.Message}
	case codeOperationFailed:
		return &errs.ActionFailed{Action: e.Message, Reason: e.Message}
	}
	return &errs.ProtocolError{Code: e.Code, Message: e.Message}
}

// Reserved JSON-RPC error codes for this protocol.
const (
	codeElementNotFound = -32000
	codeStaleHandle     = -32001
	codeAgentBusy       = -32002
	codeOperationFailed = -32003
)
