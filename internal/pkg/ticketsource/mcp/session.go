// Package mcp runs a tool server as a child process and speaks JSON-RPC 2.0
// with it over stdio. One goroutine owns both pipes; callers hand it
// requests through a channel and wait for the paired reply, so calls are
// serialized per session without any shared reader state.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
)

const protocolVersion = "2024-11-05"

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      *int64 `json:"id,omitempty"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	ID     *int64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type callResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

type pending struct {
	req   rpcRequest
	reply chan outcome
}

type outcome struct {
	result json.RawMessage
	err    error
}

// Session is one running tool server. Construct with NewSession, call Start
// before Invoke, Close when done. Sessions are safe for concurrent Invoke.
type Session struct {
	name    string
	command string
	args    []string
	env     []string

	cmd      *exec.Cmd
	stdin    io.WriteCloser
	requests chan pending
	done     chan struct{}

	nextID    atomic.Int64
	ready     atomic.Bool
	closeOnce sync.Once
}

func NewSession(name, command string, args []string, env []string) *Session {
	return &Session{
		name:     name,
		command:  command,
		args:     args,
		env:      env,
		requests: make(chan pending),
		done:     make(chan struct{}),
	}
}

// Start launches the child process and completes the protocol handshake:
// initialize, the initialized notification, then a tools listing to confirm
// the server actually serves tools.
func (s *Session) Start(ctx context.Context) error {
	cmd := exec.Command(s.command, s.args...)
	cmd.Env = append(os.Environ(), s.env...)
	cmd.Stderr = io.Discard

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", s.command, err)
	}

	s.cmd = cmd
	s.stdin = stdin

	go s.serve(bufio.NewReaderSize(stdout, 1<<20))

	initParams := map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    "journey-planner-service",
			"version": "1.0.0",
		},
	}

	if _, err := s.call(ctx, "initialize", initParams); err != nil {
		s.Close()

		return fmt.Errorf("initialize %s: %w", s.name, err)
	}

	if err := s.notify("notifications/initialized"); err != nil {
		s.Close()

		return fmt.Errorf("initialized notification %s: %w", s.name, err)
	}

	if _, err := s.call(ctx, "tools/list", map[string]any{}); err != nil {
		s.Close()

		return fmt.Errorf("list tools %s: %w", s.name, err)
	}

	s.ready.Store(true)
	slog.InfoContext(ctx, "tool session established", slog.String("session", s.name))

	return nil
}

func (s *Session) Ready() error {
	if !s.ready.Load() {
		return fmt.Errorf("session %s not established", s.name)
	}

	return nil
}

// Invoke runs one tool call and returns the text payload of its first
// content block. In-band tool errors (isError) come back as errors too.
func (s *Session) Invoke(ctx context.Context, tool string, args any) (string, error) {
	raw, err := s.call(ctx, "tools/call", map[string]any{
		"name":      tool,
		"arguments": args,
	})
	if err != nil {
		return "", err
	}

	var result callResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("decode tool result: %w", err)
	}

	text := ""
	for _, block := range result.Content {
		if block.Type == "text" {
			text = block.Text

			break
		}
	}

	if result.IsError {
		return text, fmt.Errorf("tool %s reported error: %s", tool, text)
	}

	return text, nil
}

// Close terminates the child process. Pending calls fail with a session
// closed error.
func (s *Session) Close() error {
	var err error

	s.closeOnce.Do(func() {
		s.ready.Store(false)
		close(s.done)

		if s.stdin != nil {
			s.stdin.Close()
		}

		if s.cmd != nil && s.cmd.Process != nil {
			err = s.cmd.Process.Kill()
			_ = s.cmd.Wait()
		}
	})

	return err
}

func (s *Session) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := s.nextID.Add(1)

	p := pending{
		req: rpcRequest{
			JSONRPC: "2.0",
			ID:      &id,
			Method:  method,
			Params:  params,
		},
		reply: make(chan outcome, 1),
	}

	select {
	case s.requests <- p:
	case <-s.done:
		return nil, fmt.Errorf("session %s closed", s.name)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case out := <-p.reply:
		return out.result, out.err
	case <-s.done:
		return nil, fmt.Errorf("session %s closed", s.name)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Session) notify(method string) error {
	data, err := json.Marshal(rpcRequest{JSONRPC: "2.0", Method: method})
	if err != nil {
		return err
	}

	_, err = s.stdin.Write(append(data, '\n'))

	return err
}

// serve is the single pipe owner: it writes each request, then reads stdout
// line by line until the response with the matching id arrives. Server
// notifications and stray responses are skipped. A read or write failure
// ends the session.
func (s *Session) serve(stdout *bufio.Reader) {
	for {
		var p pending

		select {
		case p = <-s.requests:
		case <-s.done:
			return
		}

		data, err := json.Marshal(p.req)
		if err != nil {
			p.reply <- outcome{err: err}

			continue
		}

		if _, err := s.stdin.Write(append(data, '\n')); err != nil {
			p.reply <- outcome{err: fmt.Errorf("write request: %w", err)}
			s.fail()

			return
		}

		out := s.awaitResponse(stdout, *p.req.ID)
		p.reply <- out

		if out.err != nil && out.result == nil {
			if _, isRPC := out.err.(*rpcError); !isRPC {
				s.fail()

				return
			}
		}
	}
}

func (s *Session) awaitResponse(stdout *bufio.Reader, id int64) outcome {
	for {
		line, err := stdout.ReadBytes('\n')
		if err != nil {
			return outcome{err: fmt.Errorf("read response: %w", err)}
		}

		var resp rpcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			// non-protocol noise on stdout, skip it
			continue
		}

		if resp.ID == nil || *resp.ID != id {
			continue
		}

		if resp.Error != nil {
			return outcome{err: resp.Error}
		}

		return outcome{result: resp.Result}
	}
}

func (s *Session) fail() {
	s.ready.Store(false)
	slog.Warn("tool session lost", slog.String("session", s.name))
	s.Close()
}
