package templates

import "github.com/broady/expressgen/gen/options"

// Middleware is one global middleware installed by the server template:
// import Name from "Module" and app.use(Name(Args...)).
type Middleware struct {
	Module string
	Name   string
	Args   []any
}

// Catalog holds the fixed data generators draw on: package names, ports and
// defaults. It is passed explicitly so tests can swap entries.
type Catalog struct {
	// Header is the comment placed at the top of every generated file.
	Header string

	// DefaultPort is the fallback for process.env.PORT.
	DefaultPort int

	// APIPrefix is where the route aggregator is mounted.
	APIPrefix string

	// Middlewares are installed in order before body parsers.
	Middlewares []Middleware

	// DialectPorts maps SQL dialects to their default server port.
	DialectPorts map[options.Dialect]int

	// MongoURI is the fallback connection string; the database name is
	// appended.
	MongoURI string

	// BcryptRounds is the cost passed to bcrypt.hash.
	BcryptRounds int

	// JWTExpiresIn is the default token lifetime.
	JWTExpiresIn string

	// SessionMaxAge is the session cookie lifetime in milliseconds.
	SessionMaxAge int
}

// DefaultCatalog returns the catalog used for generated projects.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Header:      "Generated by expressgen.",
		DefaultPort: 3000,
		APIPrefix:   "/api",
		Middlewares: []Middleware{
			{Module: "cors", Name: "cors"},
			{Module: "helmet", Name: "helmet"},
			{Module: "morgan", Name: "morgan", Args: []any{"dev"}},
		},
		DialectPorts: map[options.Dialect]int{
			options.DialectPostgres: 5432,
			options.DialectMySQL:    3306,
			options.DialectMariaDB:  3306,
			options.DialectMSSQL:    1433,
			options.DialectMongoDB:  27017,
		},
		MongoURI:      "mongodb://localhost:27017/",
		BcryptRounds:  10,
		JWTExpiresIn:  "1h",
		SessionMaxAge: 86400000,
	}
}
