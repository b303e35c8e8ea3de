package templates

import (
	"github.com/broady/expressgen/gen/ir"
	"github.com/broady/expressgen/gen/options"
)

// Websocket generates src/websocket/index.ts. Both transports echo every
// message to all connected clients.
func Websocket(ctx *Context) (*ir.Module, error) {
	o := ctx.Options
	m := &ir.Module{}
	register := &ir.FunctionDeclaration{
		Name:       "registerSocketHandlers",
		ReturnType: "void",
		Exported:   true,
	}

	switch o.WebsocketLib {
	case options.WebsocketSocketIO:
		m.Import(ir.Import("socket.io", "Server", "Socket"))
		register.Params = ir.Params(ir.Param("io", "Server"))
		register.Body = ir.Block(ir.Invoke("io", "on", "", ir.Lit("connection"),
			ir.Arrow(ir.Params(ir.Param("socket", "Socket")),
				consoleLog(ir.Template([]string{"Client connected: ", ""}, ir.Prop("socket", "id"))),
				ir.Invoke("socket", "on", "", ir.Lit("message"),
					ir.Arrow(ir.Params(ir.Param("data", "unknown")),
						ir.Invoke("io", "emit", "", ir.Lit("message"), ir.Ident("data")))),
				ir.Invoke("socket", "on", "", ir.Lit("disconnect"),
					ir.Arrow(nil, consoleLog(ir.Template([]string{"Client disconnected: ", ""}, ir.Prop("socket", "id"))))),
			),
		))

	case options.WebsocketWS:
		m.Import(ir.Import("ws", "RawData", "WebSocket", "WebSocketServer"))
		register.Params = ir.Params(ir.Param("wss", "WebSocketServer"))
		broadcast := ir.Invoke("wss", "clients", "forEach",
			ir.Arrow(ir.Params(ir.Param("client", "WebSocket")),
				ir.If(ir.Binary("===", ir.Prop("client", "readyState"), ir.Prop("WebSocket", "OPEN")),
					ir.Invoke("client", "send", "", ir.MethodCall("data", "toString"))),
			))
		register.Body = ir.Block(ir.Invoke("wss", "on", "", ir.Lit("connection"),
			ir.Arrow(ir.Params(ir.Param("socket", "WebSocket")),
				consoleLog(ir.Lit("Client connected")),
				ir.Invoke("socket", "on", "", ir.Lit("message"),
					ir.Arrow(ir.Params(ir.Param("data", "RawData")), broadcast)),
				ir.Invoke("socket", "on", "", ir.Lit("close"),
					ir.Arrow(nil, consoleLog(ir.Lit("Client disconnected")))),
			),
		))

	case options.WebsocketNone, "":
		register.Doc = "Realtime support is disabled."

	default:
		m.Add(placeholder("websocketLib", string(o.WebsocketLib)))
	}

	m.Add(register)
	return m, nil
}
