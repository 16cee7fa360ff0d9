package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const activateCommand = "show"

// InstanceGuard holds the single-instance lock. The first instance listens on
// a port derived from the application name; later instances connect to it and
// ask it to raise its window.
type InstanceGuard struct {
	listener net.Listener
	address  string
	log      *zap.Logger
}

// AcquireSingleInstance binds the application's localhost port. When the port
// is taken, the running instance is asked to show itself and
// ErrAlreadyRunning is returned.
func AcquireSingleInstance(log *zap.Logger, appName string) (*InstanceGuard, error) {
	return acquire(log, fmt.Sprintf("127.0.0.1:%d", portFromName(appName)))
}

func acquire(log *zap.Logger, address string) (*InstanceGuard, error) {
	if log == nil {
		log = zap.NewNop()
	}
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if notifyErr := notify(address); notifyErr != nil {
			log.Warn("could not reach running instance", zap.String("address", address), zap.Error(notifyErr))
		}
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener, address: listener.Addr().String(), log: log}, nil
}

// Serve accepts activation requests until Release is called. onActivate runs
// on the accepting goroutine; callers hop to their UI thread themselves.
func (guard *InstanceGuard) Serve(onActivate func()) {
	if guard == nil || guard.listener == nil {
		return
	}
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				guard.log.Warn("single instance listener stopped", zap.Error(err))
			}
			return
		}
		if guard.readCommand(conn) == activateCommand && onActivate != nil {
			onActivate()
		}
	}
}

func (guard *InstanceGuard) readCommand(conn net.Conn) string {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		guard.log.Debug("activation request dropped", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(line)
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	return guard.listener.Close()
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func notify(address string) error {
	conn, err := net.DialTimeout("tcp", address, time.Second)
	if err != nil {
		return fmt.Errorf("dial running instance: %w", err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(activateCommand + "\n")); err != nil {
		return fmt.Errorf("send activation: %w", err)
	}
	return nil
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
