package token

import (
	"fmt"
	"strings"
)

// kindInfo is the static metadata attached to a Kind.
type kindInfo struct {
	text string // fixed spelling; keywords are lowercase. Empty when the kind has none.
	name string // human-readable name used in diagnostics
	cat  Category
}

func keyword(text string, cat Category) kindInfo {
	return kindInfo{text: text, name: strings.ToUpper(text), cat: cat}
}

func punct(text string) kindInfo {
	return kindInfo{text: text, name: text, cat: CatOperator}
}

func named(name string, cat Category) kindInfo {
	return kindInfo{name: name, cat: cat}
}

// kinds is indexed by Kind. Entries are keyed, so the order of the constant
// declarations has no bearing on the table.
var kinds = [numKinds]kindInfo{
	Invalid: named("invalid", CatInvalid),

	ABORT:         keyword("abort", CatUnreserved),
	ABSOLUTE:      keyword("absolute", CatUnreserved),
	ACCESS:        keyword("access", CatUnreserved),
	ACTION:        keyword("action", CatUnreserved),
	ADD:           keyword("add", CatUnreserved),
	ADMIN:         keyword("admin", CatUnreserved),
	AFTER:         keyword("after", CatUnreserved),
	AGGREGATE:     keyword("aggregate", CatUnreserved),
	ALL:           keyword("all", CatReserved),
	ALSO:          keyword("also", CatUnreserved),
	ALTER:         keyword("alter", CatUnreserved),
	ALWAYS:        keyword("always", CatUnreserved),
	ANALYZE:       keyword("analyze", CatReserved),
	AND:           keyword("and", CatReserved),
	ANY:           keyword("any", CatReserved),
	ARRAY:         keyword("array", CatReserved),
	AS:            keyword("as", CatReserved),
	ASC:           keyword("asc", CatReserved),
	ASSERTION:     keyword("assertion", CatUnreserved),
	AT:            keyword("at", CatUnreserved),
	AUTHORIZATION: keyword("authorization", CatTypeFuncName),
	BEFORE:        keyword("before", CatUnreserved),
	BEGIN:         keyword("begin", CatUnreserved),
	BETWEEN:       keyword("between", CatColName),
	BIGINT:        keyword("bigint", CatColName),
	BINARY:        keyword("binary", CatTypeFuncName),
	BIT:           keyword("bit", CatColName),
	BOOLEAN:       keyword("boolean", CatColName),
	BOTH:          keyword("both", CatReserved),
	BY:            keyword("by", CatUnreserved),
	CACHE:         keyword("cache", CatUnreserved),
	CASCADE:       keyword("cascade", CatUnreserved),
	CASE:          keyword("case", CatReserved),
	CAST:          keyword("cast", CatReserved),
	CHAIN:         keyword("chain", CatUnreserved),
	CHAR:          keyword("char", CatColName),
	CHARACTER:     keyword("character", CatColName),
	CHECK:         keyword("check", CatReserved),
	CHECKPOINT:    keyword("checkpoint", CatUnreserved),
	CLOSE:         keyword("close", CatUnreserved),
	CLUSTER:       keyword("cluster", CatUnreserved),
	COALESCE:      keyword("coalesce", CatColName),
	COLLATE:       keyword("collate", CatReserved),
	COLUMN:        keyword("column", CatReserved),
	COMMIT:        keyword("commit", CatUnreserved),
	CONCURRENTLY:  keyword("concurrently", CatTypeFuncName),
	CONNECTION:    keyword("connection", CatUnreserved),
	CONSTRAINT:    keyword("constraint", CatReserved),
	COPY:          keyword("copy", CatUnreserved),
	CREATE:        keyword("create", CatReserved),
	CROSS:         keyword("cross", CatTypeFuncName),
	CURRENT:       keyword("current", CatUnreserved),
	CURRENT_DATE:  keyword("current_date", CatReserved),
	CURRENT_ROLE:  keyword("current_role", CatReserved),
	CURRENT_USER:  keyword("current_user", CatReserved),
	CURSOR:        keyword("cursor", CatUnreserved),
	CYCLE:         keyword("cycle", CatUnreserved),
	DATABASE:      keyword("database", CatUnreserved),
	DAY:           keyword("day", CatUnreserved),
	DEALLOCATE:    keyword("deallocate", CatUnreserved),
	DECIMAL:       keyword("decimal", CatColName),
	DECLARE:       keyword("declare", CatUnreserved),
	DEFAULT:       keyword("default", CatReserved),
	DELETE:        keyword("delete", CatUnreserved),
	DESC:          keyword("desc", CatReserved),
	DISTINCT:      keyword("distinct", CatReserved),
	DO:            keyword("do", CatReserved),
	DOMAIN:        keyword("domain", CatUnreserved),
	DOUBLE:        keyword("double", CatUnreserved),
	DROP:          keyword("drop", CatUnreserved),
	EACH:          keyword("each", CatUnreserved),
	ELSE:          keyword("else", CatReserved),
	ENCRYPTED:     keyword("encrypted", CatUnreserved),
	END:           keyword("end", CatReserved),
	ENUM:          keyword("enum", CatUnreserved),
	EXCEPT:        keyword("except", CatReserved),
	EXCLUDE:       keyword("exclude", CatUnreserved),
	EXECUTE:       keyword("execute", CatUnreserved),
	EXISTS:        keyword("exists", CatColName),
	EXPLAIN:       keyword("explain", CatUnreserved),
	EXTENSION:     keyword("extension", CatUnreserved),
	EXTRACT:       keyword("extract", CatColName),
	FALSE:         keyword("false", CatReserved),
	FETCH:         keyword("fetch", CatReserved),
	FIRST:         keyword("first", CatUnreserved),
	FLOAT:         keyword("float", CatColName),
	FOLLOWING:     keyword("following", CatUnreserved),
	FOR:           keyword("for", CatReserved),
	FOREIGN:       keyword("foreign", CatReserved),
	FROM:          keyword("from", CatReserved),
	FULL:          keyword("full", CatTypeFuncName),
	FUNCTION:      keyword("function", CatUnreserved),
	GRANT:         keyword("grant", CatReserved),
	GRANTED:       keyword("granted", CatUnreserved),
	GROUP:         keyword("group", CatReserved),
	HAVING:        keyword("having", CatReserved),
	HOUR:          keyword("hour", CatUnreserved),
	IF:            keyword("if", CatUnreserved),
	ILIKE:         keyword("ilike", CatTypeFuncName),
	IMMEDIATE:     keyword("immediate", CatUnreserved),
	IN:            keyword("in", CatReserved),
	INDEX:         keyword("index", CatUnreserved),
	INHERIT:       keyword("inherit", CatUnreserved),
	INNER:         keyword("inner", CatTypeFuncName),
	INSERT:        keyword("insert", CatUnreserved),
	INT:           keyword("int", CatColName),
	INTEGER:       keyword("integer", CatColName),
	INTERSECT:     keyword("intersect", CatReserved),
	INTERVAL:      keyword("interval", CatColName),
	INTO:          keyword("into", CatReserved),
	IS:            keyword("is", CatTypeFuncName),
	JOIN:          keyword("join", CatTypeFuncName),
	KEY:           keyword("key", CatUnreserved),
	LANGUAGE:      keyword("language", CatUnreserved),
	LAST:          keyword("last", CatUnreserved),
	LATERAL:       keyword("lateral", CatReserved),
	LEFT:          keyword("left", CatTypeFuncName),
	LEVEL:         keyword("level", CatUnreserved),
	LIKE:          keyword("like", CatTypeFuncName),
	LIMIT:         keyword("limit", CatReserved),
	LOCAL:         keyword("local", CatUnreserved),
	LOCK:          keyword("lock", CatUnreserved),
	MINUTE:        keyword("minute", CatUnreserved),
	MONTH:         keyword("month", CatUnreserved),
	NAME:          keyword("name", CatUnreserved),
	NATURAL:       keyword("natural", CatTypeFuncName),
	NEXT:          keyword("next", CatUnreserved),
	NO:            keyword("no", CatUnreserved),
	NONE:          keyword("none", CatColName),
	NOT:           keyword("not", CatReserved),
	NOTHING:       keyword("nothing", CatUnreserved),
	NULL:          keyword("null", CatReserved),
	NULLIF:        keyword("nullif", CatColName),
	NULLS:         keyword("nulls", CatUnreserved),
	NUMERIC:       keyword("numeric", CatColName),
	OF:            keyword("of", CatUnreserved),
	OFF:           keyword("off", CatUnreserved),
	OFFSET:        keyword("offset", CatReserved),
	ON:            keyword("on", CatReserved),
	ONLY:          keyword("only", CatReserved),
	OPTION:        keyword("option", CatUnreserved),
	OR:            keyword("or", CatReserved),
	ORDER:         keyword("order", CatReserved),
	OUTER:         keyword("outer", CatTypeFuncName),
	OVER:          keyword("over", CatUnreserved),
	OWNER:         keyword("owner", CatUnreserved),
	PARTITION:     keyword("partition", CatUnreserved),
	PASSWORD:      keyword("password", CatUnreserved),
	PRECEDING:     keyword("preceding", CatUnreserved),
	PRIMARY:       keyword("primary", CatReserved),
	PRIVILEGES:    keyword("privileges", CatUnreserved),
	PROCEDURE:     keyword("procedure", CatUnreserved),
	RANGE:         keyword("range", CatUnreserved),
	READ:          keyword("read", CatUnreserved),
	REAL:          keyword("real", CatColName),
	REFERENCES:    keyword("references", CatReserved),
	RENAME:        keyword("rename", CatUnreserved),
	REPLACE:       keyword("replace", CatUnreserved),
	RESET:         keyword("reset", CatUnreserved),
	RESTRICT:      keyword("restrict", CatUnreserved),
	RETURNING:     keyword("returning", CatReserved),
	REVOKE:        keyword("revoke", CatUnreserved),
	RIGHT:         keyword("right", CatTypeFuncName),
	ROLE:          keyword("role", CatUnreserved),
	ROLLBACK:      keyword("rollback", CatUnreserved),
	ROW:           keyword("row", CatColName),
	ROWS:          keyword("rows", CatUnreserved),
	SCHEMA:        keyword("schema", CatUnreserved),
	SECOND:        keyword("second", CatUnreserved),
	SELECT:        keyword("select", CatReserved),
	SEQUENCE:      keyword("sequence", CatUnreserved),
	SESSION_USER:  keyword("session_user", CatReserved),
	SET:           keyword("set", CatUnreserved),
	SETOF:         keyword("setof", CatColName),
	SHOW:          keyword("show", CatUnreserved),
	SMALLINT:      keyword("smallint", CatColName),
	SOME:          keyword("some", CatReserved),
	START:         keyword("start", CatUnreserved),
	SYMMETRIC:     keyword("symmetric", CatReserved),
	SYSTEM:        keyword("system", CatUnreserved),
	TABLE:         keyword("table", CatReserved),
	TEMP:          keyword("temp", CatUnreserved),
	TEMPORARY:     keyword("temporary", CatUnreserved),
	TEXT:          keyword("text", CatUnreserved),
	THEN:          keyword("then", CatReserved),
	TIME:          keyword("time", CatColName),
	TIMESTAMP:     keyword("timestamp", CatColName),
	TO:            keyword("to", CatReserved),
	TRANSACTION:   keyword("transaction", CatUnreserved),
	TRIGGER:       keyword("trigger", CatUnreserved),
	TRIM:          keyword("trim", CatColName),
	TRUE:          keyword("true", CatReserved),
	TRUNCATE:      keyword("truncate", CatUnreserved),
	TYPE:          keyword("type", CatUnreserved),
	UNBOUNDED:     keyword("unbounded", CatUnreserved),
	UNION:         keyword("union", CatReserved),
	UNIQUE:        keyword("unique", CatReserved),
	UNTIL:         keyword("until", CatUnreserved),
	UPDATE:        keyword("update", CatUnreserved),
	USER:          keyword("user", CatReserved),
	USING:         keyword("using", CatReserved),
	VACUUM:        keyword("vacuum", CatUnreserved),
	VALID:         keyword("valid", CatUnreserved),
	VALUES:        keyword("values", CatColName),
	VARCHAR:       keyword("varchar", CatColName),
	VARIADIC:      keyword("variadic", CatReserved),
	VERBOSE:       keyword("verbose", CatTypeFuncName),
	VIEW:          keyword("view", CatUnreserved),
	WHEN:          keyword("when", CatReserved),
	WHERE:         keyword("where", CatReserved),
	WINDOW:        keyword("window", CatReserved),
	WITH:          keyword("with", CatReserved),
	WITHOUT:       keyword("without", CatUnreserved),
	WORK:          keyword("work", CatUnreserved),
	WRITE:         keyword("write", CatUnreserved),
	YEAR:          keyword("year", CatUnreserved),
	ZONE:          keyword("zone", CatUnreserved),

	IDENT:  named("identifier", CatIdentifier),
	QIDENT: named("quoted identifier", CatIdentifier),

	ICONST: named("integer literal", CatLiteral),
	FCONST: named("float literal", CatLiteral),
	SCONST: named("string literal", CatLiteral),
	BCONST: named("bit string", CatLiteral),
	XCONST: named("hex string", CatLiteral),
	DCONST: named("dollar-quoted string", CatLiteral),
	PARAM:  named("parameter", CatParameter),

	WHITESPACE: named("whitespace", CatWhitespace),
	COMMENT:    named("comment", CatComment),

	TYPECAST:     punct("::"),
	DOTDOT:       punct(".."),
	COLON_EQUALS: punct(":="),
	COMMA:        punct(","),
	LPAREN:       punct("("),
	RPAREN:       punct(")"),
	LBRACKET:     punct("["),
	RBRACKET:     punct("]"),
	DOT:          punct("."),
	SEMICOLON:    punct(";"),
	COLON:        punct(":"),
	PLUS:         punct("+"),
	MINUS:        punct("-"),
	STAR:         punct("*"),
	SLASH:        punct("/"),
	PERCENT:      punct("%"),
	CARET:        punct("^"),
	LT:           punct("<"),
	GT:           punct(">"),
	EQ:           punct("="),
	OPERATOR:     named("operator", CatOperator),

	UNTERMINATED_COMMENT:       named("unterminated block comment", CatError|CatComment),
	UNTERMINATED_STRING:        named("unterminated quoted string", CatError|CatLiteral),
	UNTERMINATED_BIT_STRING:    named("unterminated bit string", CatError|CatLiteral),
	UNTERMINATED_HEX_STRING:    named("unterminated hex string", CatError|CatLiteral),
	UNTERMINATED_QUOTED_IDENT:  named("unterminated quoted identifier", CatError|CatIdentifier),
	UNTERMINATED_DOLLAR_STRING: named("unterminated dollar-quoted string", CatError|CatLiteral),
	MALFORMED_DOLLAR_QUOTE:     named("malformed dollar quote", CatError|CatLiteral),
	ZERO_LENGTH_QUOTED_IDENT:   named("zero-length quoted identifier", CatError|CatIdentifier),
	ILLEGAL:                    named("illegal character", CatError|CatInvalid),
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// Text returns the fixed spelling of k: the lowercase keyword or the
// punctuation symbol. It returns "" for kinds whose spelling varies.
func (k Kind) Text() string {
	if !k.Valid() {
		return ""
	}
	return kinds[k].text
}

// Category returns the category flags of k.
func (k Kind) Category() Category {
	if !k.Valid() {
		return CatInvalid
	}
	return kinds[k].cat
}

// Is reports whether k carries any of the flags in c.
func (k Kind) Is(c Category) bool {
	return k.Category()&c != 0
}

// String returns a human-readable name for k.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("TOKEN(%d)", k)
	}
	return kinds[k].name
}

// NumKinds returns the number of declared kinds, including Invalid.
func NumKinds() int {
	return int(numKinds)
}
