package utils

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Pointer polls the desktop pointer through the X server so parallax can
// follow the cursor while the window is not focused.
type Pointer struct {
	conn *xgb.Conn
	root xproto.Window
}

func NewPointer() (*Pointer, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	return &Pointer{conn: conn, root: setup.DefaultScreen(conn).Root}, nil
}

// Position returns the pointer position on the root window.
func (p *Pointer) Position() (int, int, error) {
	reply, err := xproto.QueryPointer(p.conn, p.root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), nil
}

// Relative returns the pointer position relative to a window whose top-left
// corner sits at originX, originY on the root window.
func (p *Pointer) Relative(originX, originY float64) (float64, float64, error) {
	x, y, err := p.Position()
	if err != nil {
		return 0, 0, err
	}
	return float64(x) - originX, float64(y) - originY, nil
}

func (p *Pointer) Close() {
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}
