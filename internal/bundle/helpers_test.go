package bundle

import (
	"errors"
	"fmt"
)

// recordingConn records registered function names in order.
type recordingConn struct {
	funcs []string
	fail  map[string]error
}

func newRecordingConn() *recordingConn {
	return &recordingConn{fail: make(map[string]error)}
}

func (c *recordingConn) RegisterFunc(name string, _ any, _ bool) error {
	if err := c.fail[name]; err != nil {
		return err
	}
	c.funcs = append(c.funcs, name)
	return nil
}

func (c *recordingConn) RegisterAggregator(name string, impl any, pure bool) error {
	return c.RegisterFunc(name, impl, pure)
}

var errBoom = errors.New("boom")

// fnName is the function a test module registers.
func fnName(module string) string {
	return module + "_fn"
}

// testModule registers a single function named after the module.
func testModule(name string) Module {
	return NewModule(name, func(conn Connection) error {
		return conn.RegisterFunc(fnName(name), func() int64 { return 1 }, true)
	})
}

// failingModule fails without registering anything.
func failingModule(name string) Module {
	return NewModule(name, func(Connection) error {
		return fmt.Errorf("%s: %w", name, errBoom)
	})
}

func testModules(names ...string) []Module {
	modules := make([]Module, len(names))
	for i, n := range names {
		modules[i] = testModule(n)
	}
	return modules
}

func planNames(p Plan) []string {
	names := make([]string, len(p.Decisions))
	for i, d := range p.Decisions {
		names[i] = d.Module.Name
	}
	return names
}
