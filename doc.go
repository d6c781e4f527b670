// Package bibtexvcs parses BibTeX database files into a structured,
// queryable object model supporting string macros, nested brace groups,
// hash concatenation and author name decomposition.
//
// BNF of the accepted grammar:
//
//	Database   ::= [Junk] Definition*                  -- Junk becomes an implicit comment
//	Definition ::= '@' (Comment | Preamble | Macro | Entry)
//	Comment    ::= "comment" Bracketed(CharsNoCurly)
//	Preamble   ::= "preamble" Bracketed(FieldValue)
//	Macro      ::= "string" Bracketed(Name '=' FieldValue)
//	Entry      ::= Type Bracketed(Key ',' Field (',' Field)* [','])
//	Bracketed(x) ::= '{' x '}' | '(' x ')'
//	Type       ::= Name                                -- may not start with a digit
//	Key        ::= [^\s"#%'(),={}]+                    -- may start with a digit
//	Field      ::= Name '=' FieldValue
//	           |   ("author"|"editor") '=' '{' PersonName ("and" PersonName)* '}'
//	FieldValue ::= Value ('#' Value)*
//	Value      ::= [0-9]+
//	           |   Name                                -- macro reference
//	           |   '"' ([^"{}] | CurlyString)* '"'
//	           |   CurlyString
//	CurlyString ::= '{' (CharsNoCurly | CurlyString)* '}'   -- balanced
//
// The reserved keywords comment, preamble and string are matched case
// insensitively, as are entry types, field names and macro keys, which are
// all normalized to lower case. Cite keys and string contents keep their
// original case.
//
// Author and editor fields are decomposed into structured names supporting
// both comma style ("van der Zalm, E." or "Forney, Jr., David G.") and
// literal style ("Michael Helmling"); brace groups are kept as indivisible
// name parts, so "{Ministry of Truth and Justice}" is a single name despite
// containing the word "and".
package bibtexvcs
