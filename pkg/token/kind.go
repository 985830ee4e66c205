// Package token defines the lexical vocabulary of the scanner: the closed set
// of token kinds, their category flags, the keyword table used to classify
// bare words and the token stream produced by a scan.
package token

// Kind identifies the lexical class of a token. The set is closed: every
// keyword, punctuation mark, literal shape, identifier shape and lexical
// error condition has exactly one Kind.
type Kind int32

//nolint:revive // ALL_CAPS names follow the Postgres grammar token conventions
const (
	Invalid Kind = iota

	// Keywords (alphabetical)
	ABORT
	ABSOLUTE
	ACCESS
	ACTION
	ADD
	ADMIN
	AFTER
	AGGREGATE
	ALL
	ALSO
	ALTER
	ALWAYS
	ANALYZE
	AND
	ANY
	ARRAY
	AS
	ASC
	ASSERTION
	AT
	AUTHORIZATION
	BEFORE
	BEGIN
	BETWEEN
	BIGINT
	BINARY
	BIT
	BOOLEAN
	BOTH
	BY
	CACHE
	CASCADE
	CASE
	CAST
	CHAIN
	CHAR
	CHARACTER
	CHECK
	CHECKPOINT
	CLOSE
	CLUSTER
	COALESCE
	COLLATE
	COLUMN
	COMMIT
	CONCURRENTLY
	CONNECTION
	CONSTRAINT
	COPY
	CREATE
	CROSS
	CURRENT
	CURRENT_DATE
	CURRENT_ROLE
	CURRENT_USER
	CURSOR
	CYCLE
	DATABASE
	DAY
	DEALLOCATE
	DECIMAL
	DECLARE
	DEFAULT
	DELETE
	DESC
	DISTINCT
	DO
	DOMAIN
	DOUBLE
	DROP
	EACH
	ELSE
	ENCRYPTED
	END
	ENUM
	EXCEPT
	EXCLUDE
	EXECUTE
	EXISTS
	EXPLAIN
	EXTENSION
	EXTRACT
	FALSE
	FETCH
	FIRST
	FLOAT
	FOLLOWING
	FOR
	FOREIGN
	FROM
	FULL
	FUNCTION
	GRANT
	GRANTED
	GROUP
	HAVING
	HOUR
	IF
	ILIKE
	IMMEDIATE
	IN
	INDEX
	INHERIT
	INNER
	INSERT
	INT
	INTEGER
	INTERSECT
	INTERVAL
	INTO
	IS
	JOIN
	KEY
	LANGUAGE
	LAST
	LATERAL
	LEFT
	LEVEL
	LIKE
	LIMIT
	LOCAL
	LOCK
	MINUTE
	MONTH
	NAME
	NATURAL
	NEXT
	NO
	NONE
	NOT
	NOTHING
	NULL
	NULLIF
	NULLS
	NUMERIC
	OF
	OFF
	OFFSET
	ON
	ONLY
	OPTION
	OR
	ORDER
	OUTER
	OVER
	OWNER
	PARTITION
	PASSWORD
	PRECEDING
	PRIMARY
	PRIVILEGES
	PROCEDURE
	RANGE
	READ
	REAL
	REFERENCES
	RENAME
	REPLACE
	RESET
	RESTRICT
	RETURNING
	REVOKE
	RIGHT
	ROLE
	ROLLBACK
	ROW
	ROWS
	SCHEMA
	SECOND
	SELECT
	SEQUENCE
	SESSION_USER
	SET
	SETOF
	SHOW
	SMALLINT
	SOME
	START
	SYMMETRIC
	SYSTEM
	TABLE
	TEMP
	TEMPORARY
	TEXT
	THEN
	TIME
	TIMESTAMP
	TO
	TRANSACTION
	TRIGGER
	TRIM
	TRUE
	TRUNCATE
	TYPE
	UNBOUNDED
	UNION
	UNIQUE
	UNTIL
	UPDATE
	USER
	USING
	VACUUM
	VALID
	VALUES
	VARCHAR
	VARIADIC
	VERBOSE
	VIEW
	WHEN
	WHERE
	WINDOW
	WITH
	WITHOUT
	WORK
	WRITE
	YEAR
	ZONE

	// Identifiers
	IDENT  // bare word that is not a keyword
	QIDENT // "quoted identifier"

	// Literals
	ICONST // 123
	FCONST // 1.5, 1e10
	SCONST // 'text', E'text'
	BCONST // B'0101'
	XCONST // X'1f'
	DCONST // $tag$text$tag$
	PARAM  // $1

	WHITESPACE
	COMMENT

	// Punctuation and operators
	TYPECAST     // ::
	DOTDOT       // ..
	COLON_EQUALS // :=
	COMMA        // ,
	LPAREN       // (
	RPAREN       // )
	LBRACKET     // [
	RBRACKET     // ]
	DOT          // .
	SEMICOLON    // ;
	COLON        // :
	PLUS         // +
	MINUS        // -
	STAR         // *
	SLASH        // /
	PERCENT      // %
	CARET        // ^
	LT           // <
	GT           // >
	EQ           // =
	OPERATOR     // any other run of operator characters

	// Lexical errors
	UNTERMINATED_COMMENT
	UNTERMINATED_STRING
	UNTERMINATED_BIT_STRING
	UNTERMINATED_HEX_STRING
	UNTERMINATED_QUOTED_IDENT
	UNTERMINATED_DOLLAR_STRING
	MALFORMED_DOLLAR_QUOTE
	ZERO_LENGTH_QUOTED_IDENT
	ILLEGAL

	numKinds
)
