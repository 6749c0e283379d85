package stream

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
)

const (
	// socketBufferSize is the send/receive buffer size requested for socket
	// streams. It's the largest size that's portably honored in practice.
	socketBufferSize = 256 * 1024
	// connectRetryAttempts is the number of additional connection attempts a
	// client makes, absorbing the race where the client starts before the
	// server is listening.
	connectRetryAttempts = 10
	// connectRetryInterval is the fixed delay between client connection
	// attempts.
	connectRetryInterval = time.Second
)

// configureSocket requests enlarged transfer buffers on a connection.
// Failures only affect throughput and are ignored.
func configureSocket(connection net.Conn) {
	if tcp, ok := connection.(*net.TCPConn); ok {
		tcp.SetReadBuffer(socketBufferSize)
		tcp.SetWriteBuffer(socketBufferSize)
	}
}

// newSocketStream initializes a bidirectional stream over a connected socket.
func newSocketStream(name string, connection net.Conn) *Stream {
	return &Stream{
		name:   name,
		kind:   TransportSocket,
		mode:   ModeReadWrite,
		conn:   connection,
		reader: bufio.NewReader(connection),
		writer: bufio.NewWriter(connection),
		ok:     true,
		logger: defaultLogger(),
	}
}

// OpenServerSocket listens on the specified TCP port and blocks until exactly
// one peer connects, returning a bidirectional stream over the accepted
// connection. The port is marked for immediate reuse and the connection's
// transfer buffers are enlarged.
func OpenServerSocket(port uint16) (*Stream, error) {
	// Create the listener with address reuse enabled.
	configuration := net.ListenConfig{Control: reuseAddress}
	listener, err := configuration.Listen(context.Background(), "tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, errors.Wrapf(err, "unable to listen on port %d", port)
	}

	// Block until a single peer connects, then stop accepting.
	connection, err := listener.Accept()
	listener.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "unable to accept connection on port %d", port)
	}
	configureSocket(connection)

	// Success.
	return newSocketStream(fmt.Sprintf(":%d", port), connection), nil
}

// OpenClientSocket resolves host and connects to the specified TCP port,
// retrying a bounded number of times with a fixed delay to absorb the race
// where the client starts before the server is listening. It returns a
// bidirectional stream over the established connection, or fails after the
// retry budget is exhausted.
func OpenClientSocket(host string, port uint16) (*Stream, error) {
	address := net.JoinHostPort(host, strconv.FormatUint(uint64(port), 10))

	// Attempt the connection across the retry budget.
	var connection net.Conn
	connect := func() error {
		var err error
		connection, err = net.Dial("tcp", address)
		return err
	}
	retry := backoff.WithMaxRetries(backoff.NewConstantBackOff(connectRetryInterval), connectRetryAttempts)
	if err := backoff.Retry(connect, retry); err != nil {
		return nil, errors.Wrapf(err, "unable to connect to %s", address)
	}
	configureSocket(connection)

	// Success.
	return newSocketStream(address, connection), nil
}
