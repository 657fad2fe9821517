package daemon

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"time"
)

// Client is one connection to a control socket.
type Client struct {
	conn    net.Conn
	scanner *bufio.Scanner
}

func Dial(socketPath string) (*Client, error) {
	conn, err := net.DialTimeout("unix", socketPath, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", socketPath, err)
	}
	return &Client{conn: conn, scanner: bufio.NewScanner(conn)}, nil
}

func (c *Client) Send(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = c.conn.Write(append(data, '\n'))
	return err
}

// Receive blocks for the next message. It returns io.EOF once the server
// closes the connection.
func (c *Client) Receive() (Message, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return Message{}, err
		}
		return Message{}, io.EOF
	}
	var msg Message
	if err := json.Unmarshal(c.scanner.Bytes(), &msg); err != nil {
		return Message{}, fmt.Errorf("bad reply: %w", err)
	}
	return msg, nil
}

// Request sends msg and waits for the reply. An error reply is returned as
// an error.
func (c *Client) Request(msg Message) (Message, error) {
	if err := c.Send(msg); err != nil {
		return Message{}, err
	}
	reply, err := c.Receive()
	if err != nil {
		return Message{}, err
	}
	if reply.Type == MsgError {
		var p ErrorPayload
		if err := reply.Decode(&p); err != nil {
			return reply, err
		}
		return reply, fmt.Errorf("daemon: %s", p.Error)
	}
	return reply, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
