package platform

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// xgbClient implements ewmhClient over an xgbutil connection to $DISPLAY.
type xgbClient struct {
	xu *xgbutil.XUtil
}

func dialXgb() (ewmhClient, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}
	return &xgbClient{xu: xu}, nil
}

func (c *xgbClient) ClientListStacking() ([]xproto.Window, error) {
	return ewmh.ClientListStackingGet(c.xu)
}

func (c *xgbClient) ClientList() ([]xproto.Window, error) {
	return ewmh.ClientListGet(c.xu)
}

// Title prefers the UTF-8 _NET_WM_NAME over the legacy WM_NAME.
func (c *xgbClient) Title(win xproto.Window) string {
	if name, err := ewmh.WmNameGet(c.xu, win); err == nil && name != "" {
		return name
	}
	name, _ := icccm.WmNameGet(c.xu, win)
	return name
}

func (c *xgbClient) PID(win xproto.Window) (int, error) {
	pid, err := ewmh.WmPidGet(c.xu, win)
	return int(pid), err
}

func (c *xgbClient) Desktop(win xproto.Window) (uint, error) {
	return ewmh.WmDesktopGet(c.xu, win)
}

func (c *xgbClient) WindowTypes(win xproto.Window) ([]string, error) {
	return ewmh.WmWindowTypeGet(c.xu, win)
}

func (c *xgbClient) States(win xproto.Window) ([]string, error) {
	return ewmh.WmStateGet(c.xu, win)
}

func (c *xgbClient) Class(win xproto.Window) (string, string, error) {
	cls, err := icccm.WmClassGet(c.xu, win)
	if err != nil {
		return "", "", err
	}
	return cls.Instance, cls.Class, nil
}

func (c *xgbClient) RemoveState(win xproto.Window, state string) error {
	return ewmh.WmStateReq(c.xu, win, ewmh.StateRemove, state)
}

func (c *xgbClient) Activate(win xproto.Window) error {
	return ewmh.ActiveWindowReq(c.xu, win)
}

func (c *xgbClient) Close() {
	c.xu.Conn().Close()
}
