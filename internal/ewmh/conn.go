package ewmh

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// desktops is the slice of EWMH root-window properties the backend uses.
type desktops interface {
	Count() (int, error)
	Current() (int, error)
	Names() ([]string, error)
	SetNames(names []string) error
	RequestCount(n int) error
	RequestCurrent(index int) error
	Close()
}

// xconn reads and writes desktop properties on a live X server.
type xconn struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

func dialX() (*xconn, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &xconn{xu: xu, root: xu.RootWin()}, nil
}

func (c *xconn) Close() {
	c.xu.Conn().Close()
}

func (c *xconn) Count() (int, error) {
	n, err := ewmh.NumberOfDesktopsGet(c.xu)
	if err != nil {
		return 0, fmt.Errorf("failed to get desktop count: %w", err)
	}
	return int(n), nil
}

func (c *xconn) Current() (int, error) {
	d, err := ewmh.CurrentDesktopGet(c.xu)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(d), nil
}

func (c *xconn) Names() ([]string, error) {
	names, err := ewmh.DesktopNamesGet(c.xu)
	if err != nil {
		// Window managers that never named a desktop leave the property unset.
		return nil, nil
	}
	return names, nil
}

func (c *xconn) SetNames(names []string) error {
	if err := ewmh.DesktopNamesSet(c.xu, names); err != nil {
		return fmt.Errorf("failed to set desktop names: %w", err)
	}
	return nil
}

// RequestCount and RequestCurrent build the root client messages by hand;
// the xgbutil *Req helpers panic on this library version.
func (c *xconn) RequestCount(n int) error {
	return c.rootMessage("_NET_NUMBER_OF_DESKTOPS", uint32(n))
}

func (c *xconn) RequestCurrent(index int) error {
	return c.rootMessage("_NET_CURRENT_DESKTOP", uint32(index), uint32(xproto.TimeCurrentTime))
}

func (c *xconn) rootMessage(atom string, data ...uint32) error {
	reply, err := xproto.InternAtom(c.xu.Conn(), false, uint16(len(atom)), atom).Reply()
	if err != nil {
		return fmt.Errorf("failed to intern %s: %w", atom, err)
	}

	payload := make([]uint32, 5)
	copy(payload, data)
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.root,
		Type:   reply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New(payload),
	}

	if err := xproto.SendEventChecked(
		c.xu.Conn(),
		false,
		c.root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check(); err != nil {
		return fmt.Errorf("failed to send %s: %w", atom, err)
	}
	return nil
}
