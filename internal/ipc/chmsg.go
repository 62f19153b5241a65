// vi: sw=4 ts=4:

/*

	Mnemonic:	ipc
	Abstract:	Minimal request/response message used to drive tegu-style
				single goroutine managers: a message is built, sent to a
				manager's channel, and (optionally) the sender blocks on a
				response channel carried inside the message itself.  Mirrors
				the Mk_chmsg()/Send_req()/Msg_type/Req_data/Response_ch/State
				shape used throughout managers/agent.go, managers/events.go
				and managers/res_mgr.go's name2ip helper.
	Date:		31 July 2026
	Author:		rendez contributors
*/

package ipc

// Chmsg is sent on a manager's request channel and, if ResponseCh is
// non-nil, sent back on ResponseCh once the manager has filled in
// RespData/State.
type Chmsg struct {
	MsgType    int
	ReqData    interface{}
	RespData   interface{}
	State      error
	ResponseCh chan *Chmsg
}

// MkChmsg allocates an empty message the way ipc.Mk_chmsg() does.
func MkChmsg() *Chmsg {
	return &Chmsg{}
}

// SendReq populates the message and sends it to reqCh. If respCh is
// non-nil it is attached so the receiver can route its answer back; the
// caller is expected to then read from respCh itself (SendReq does not
// block on the response, matching Send_req's fire-and-optionally-await
// usage throughout the manager goroutines).
func (m *Chmsg) SendReq(reqCh chan *Chmsg, respCh chan *Chmsg, msgType int, reqData interface{}, state error) {
	m.MsgType = msgType
	m.ReqData = reqData
	m.State = state
	m.ResponseCh = respCh
	reqCh <- m
}

// Reply sends the (now-populated) message back on its own ResponseCh, the
// way a manager's dispatch loop does with "req.Response_ch <- req" once a
// case in its big switch has finished.
func (m *Chmsg) Reply() {
	if m.ResponseCh != nil {
		m.ResponseCh <- m
	}
}
