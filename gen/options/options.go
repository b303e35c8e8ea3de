// Package options turns loosely typed scaffolding answers into the typed,
// normalized Options record every template generator reads.
//
// Inputs arrive as a Raw record (from YAML, key=value pairs or flags) where
// feature switches may be booleans or strings. Normalize maps "false",
// "none" and the empty string to the same disabled state, lowercases enum
// values and keeps values it does not recognize so generators can emit a
// placeholder for them.
package options

import (
	"fmt"
	"strconv"
	"strings"
)

// ORM is the database toolkit of the generated project.
type ORM string

const (
	ORMNone      ORM = "none"
	ORMSequelize ORM = "sequelize"
	ORMTypeORM   ORM = "typeorm"
	ORMPrisma    ORM = "prisma"
	ORMMongoose  ORM = "mongoose"
)

// Known reports whether o is one of the supported ORMs. The zero value
// counts as ORMNone.
func (o ORM) Known() bool {
	switch o {
	case "", ORMNone, ORMSequelize, ORMTypeORM, ORMPrisma, ORMMongoose:
		return true
	}
	return false
}

// Enabled reports whether the project talks to a database.
// The zero value means ORMNone.
func (o ORM) Enabled() bool {
	return o != "" && o != ORMNone
}

// SQL reports whether o talks to a SQL database.
func (o ORM) SQL() bool {
	return o == ORMSequelize || o == ORMTypeORM || o == ORMPrisma
}

// Dialect is the database server flavor.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite"
	DialectMariaDB  Dialect = "mariadb"
	DialectMSSQL    Dialect = "mssql"
	DialectMongoDB  Dialect = "mongodb"
)

// Known reports whether d is one of the supported dialects.
func (d Dialect) Known() bool {
	switch d {
	case DialectPostgres, DialectMySQL, DialectSQLite, DialectMariaDB, DialectMSSQL, DialectMongoDB:
		return true
	}
	return false
}

// AuthLib is the authentication strategy.
type AuthLib string

const (
	AuthNone     AuthLib = "none"
	AuthPassport AuthLib = "passport"
	AuthJWT      AuthLib = "jwt"
	AuthSession  AuthLib = "express-session"
)

// Known reports whether a is one of the supported strategies. The zero
// value counts as AuthNone.
func (a AuthLib) Known() bool {
	switch a {
	case "", AuthNone, AuthPassport, AuthJWT, AuthSession:
		return true
	}
	return false
}

// Enabled reports whether authentication is on.
// The zero value means AuthNone.
func (a AuthLib) Enabled() bool {
	return a != "" && a != AuthNone
}

// WebsocketLib is the realtime transport.
type WebsocketLib string

const (
	WebsocketNone     WebsocketLib = "none"
	WebsocketSocketIO WebsocketLib = "socketio"
	WebsocketWS       WebsocketLib = "ws"
)

// Known reports whether w is one of the supported transports. The zero
// value counts as WebsocketNone.
func (w WebsocketLib) Known() bool {
	switch w {
	case "", WebsocketNone, WebsocketSocketIO, WebsocketWS:
		return true
	}
	return false
}

// Enabled reports whether a realtime transport is selected.
// The zero value means WebsocketNone.
func (w WebsocketLib) Enabled() bool {
	return w != "" && w != WebsocketNone
}

// ViewEngine is the server-side template engine.
type ViewEngine string

const (
	ViewNone       ViewEngine = "none"
	ViewEJS        ViewEngine = "ejs"
	ViewPug        ViewEngine = "pug"
	ViewHandlebars ViewEngine = "handlebars"
)

// Known reports whether v is one of the supported engines. The zero
// value counts as ViewNone.
func (v ViewEngine) Known() bool {
	switch v {
	case "", ViewNone, ViewEJS, ViewPug, ViewHandlebars:
		return true
	}
	return false
}

// Enabled reports whether server-side views are on.
// The zero value means ViewNone.
func (v ViewEngine) Enabled() bool {
	return v != "" && v != ViewNone
}

// Options is the normalized options record. A disabled feature always has
// its switch false and its library set to the "none" value, so generators
// only need to look at one of them. An empty library reads as "none".
type Options struct {
	ProjectName    string `validate:"required,max=214,npmname"`
	Database       bool
	DatabaseOrm    ORM
	DatabaseName   string `validate:"omitempty,max=63,dbname"`
	Dialect        Dialect
	Authentication bool
	AuthLib        AuthLib
	WebSockets     bool
	WebsocketLib   WebsocketLib
	View           bool
	ViewEngine     ViewEngine
}

// Defaults returns the options of a plain Express project named name.
func Defaults(name string) Options {
	return Options{
		ProjectName:  name,
		DatabaseOrm:  ORMNone,
		AuthLib:      AuthNone,
		WebsocketLib: WebsocketNone,
		ViewEngine:   ViewNone,
	}
}

// Raw is options input before normalization. Feature switches accept
// booleans or library names ("database: postgres").
type Raw struct {
	ProjectName    string `yaml:"projectName" schema:"projectName"`
	Database       string `yaml:"database" schema:"database"`
	DatabaseOrm    string `yaml:"databaseOrm" schema:"databaseOrm"`
	DatabaseName   string `yaml:"databaseName" schema:"databaseName"`
	Dialect        string `yaml:"dialect" schema:"dialect"`
	Authentication string `yaml:"authentication" schema:"authentication"`
	AuthLib        string `yaml:"authLib" schema:"authLib"`
	WebSockets     string `yaml:"webSockets" schema:"webSockets"`
	WebsocketLib   string `yaml:"websocketLib" schema:"websocketLib"`
	View           string `yaml:"view" schema:"view"`
	ViewEngine     string `yaml:"viewEngine" schema:"viewEngine"`
}

// Warning describes an input value that normalization kept but that no
// generator supports.
type Warning struct {
	Field string
	Value string
}

func (w Warning) String() string {
	return fmt.Sprintf("unsupported %s %q", w.Field, w.Value)
}

// Normalize converts raw input into Options. It never fails: values it
// does not recognize are kept verbatim and reported as warnings.
func Normalize(raw Raw) (Options, []Warning) {
	var warns []Warning
	warn := func(field, value string) {
		warns = append(warns, Warning{Field: field, Value: value})
	}

	opts := Defaults(strings.TrimSpace(raw.ProjectName))
	opts.DatabaseName = strings.TrimSpace(raw.DatabaseName)

	// database may name a dialect or an ORM instead of a boolean.
	dbOn, dbHint := toggle(raw.Database)
	orm := ORM(enum(raw.DatabaseOrm))
	dialect := Dialect(enum(raw.Dialect))
	if dbHint != "" {
		switch {
		case Dialect(dbHint).Known() && dialect == "":
			dialect = Dialect(dbHint)
		case ORM(dbHint).Known() && orm == "":
			orm = ORM(dbHint)
		}
	}
	if orm == "" && dialect == DialectMongoDB {
		orm = ORMMongoose
	}
	if raw.Database == "" && orm.Enabled() {
		dbOn = true
	}
	switch {
	case !dbOn || orm == ORMNone:
		opts.DatabaseOrm = ORMNone
	case orm == "":
		opts.Database = true
		opts.DatabaseOrm = ORMSequelize
	default:
		opts.Database = true
		opts.DatabaseOrm = orm
		if !orm.Known() {
			warn("databaseOrm", string(orm))
		}
	}
	if opts.Database {
		switch {
		case dialect != "":
			opts.Dialect = dialect
			if !dialect.Known() {
				warn("dialect", string(dialect))
			}
		case opts.DatabaseOrm == ORMMongoose:
			opts.Dialect = DialectMongoDB
		default:
			opts.Dialect = DialectPostgres
		}
		if opts.DatabaseName == "" {
			opts.DatabaseName = defaultDatabaseName(opts.ProjectName)
		}
	}

	authOn, authHint := toggle(raw.Authentication)
	auth := AuthLib(enum(raw.AuthLib))
	if auth == "" && authHint != "" {
		auth = AuthLib(authHint)
	}
	if raw.Authentication == "" && auth.Enabled() {
		authOn = true
	}
	switch {
	case !authOn || auth == AuthNone:
	case auth == "":
		opts.Authentication, opts.AuthLib = true, AuthJWT
	default:
		opts.Authentication, opts.AuthLib = true, auth
		if !auth.Known() {
			warn("authLib", string(auth))
		}
	}

	wsOn, wsHint := toggle(raw.WebSockets)
	ws := WebsocketLib(enum(raw.WebsocketLib))
	if ws == "" && wsHint != "" {
		ws = WebsocketLib(wsHint)
	}
	if raw.WebSockets == "" && ws.Enabled() {
		wsOn = true
	}
	switch {
	case !wsOn || ws == WebsocketNone:
	case ws == "":
		opts.WebSockets, opts.WebsocketLib = true, WebsocketSocketIO
	default:
		opts.WebSockets, opts.WebsocketLib = true, ws
		if !ws.Known() {
			warn("websocketLib", string(ws))
		}
	}

	viewOn, viewHint := toggle(raw.View)
	view := ViewEngine(enum(raw.ViewEngine))
	if view == "" && viewHint != "" {
		view = ViewEngine(viewHint)
	}
	if raw.View == "" && view.Enabled() {
		viewOn = true
	}
	switch {
	case !viewOn || view == ViewNone:
	case view == "":
		opts.View, opts.ViewEngine = true, ViewEJS
	default:
		opts.View, opts.ViewEngine = true, view
		if !view.Known() {
			warn("viewEngine", string(view))
		}
	}

	return opts, warns
}

// toggle interprets a feature switch. Booleans and "none" turn the feature
// on or off; any other non-empty value turns it on and is returned as a
// library hint.
func toggle(s string) (on bool, hint string) {
	v := enum(s)
	switch v {
	case "", "none", "no", "off":
		return false, ""
	case "yes", "on":
		return true, ""
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b, ""
	}
	return true, v
}

func enum(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "socket.io", "socket-io":
		return string(WebsocketSocketIO)
	case "session":
		return string(AuthSession)
	case "postgresql":
		return string(DialectPostgres)
	}
	return v
}

func defaultDatabaseName(project string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(project) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-', r == '.', r == '_', r == ' ':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "app"
	}
	return b.String()
}
