package ast

type BinaryOperator int

const (
	OpMult BinaryOperator = iota
	OpDiv
	OpPercent
	OpPlus
	OpMinus
	OpShiftL
	OpShiftR
	OpGreater
	OpGreaterEq
	OpLess
	OpLessEq
	OpIn
	OpManifestEqual
	OpManifestUnequal
	OpBitwiseAnd
	OpBitwiseXor
	OpBitwiseOr
	OpAnd
	OpOr
)

var binaryOperators = map[BinaryOperator]string{
	OpMult:            "*",
	OpDiv:             "/",
	OpPercent:         "%",
	OpPlus:            "+",
	OpMinus:           "-",
	OpShiftL:          "<<",
	OpShiftR:          ">>",
	OpGreater:         ">",
	OpGreaterEq:       ">=",
	OpLess:            "<",
	OpLessEq:          "<=",
	OpIn:              "in",
	OpManifestEqual:   "==",
	OpManifestUnequal: "!=",
	OpBitwiseAnd:      "&",
	OpBitwiseXor:      "^",
	OpBitwiseOr:       "|",
	OpAnd:             "&&",
	OpOr:              "||",
}

func (op BinaryOperator) String() string {
	if s, ok := binaryOperators[op]; ok {
		return s
	}
	return "<invalid>"
}

// Precedence of op, higher binds tighter
func (op BinaryOperator) Precedence() int {
	switch op {
	case OpMult, OpDiv, OpPercent:
		return 10
	case OpPlus, OpMinus:
		return 9
	case OpShiftL, OpShiftR:
		return 8
	case OpGreater, OpGreaterEq, OpLess, OpLessEq, OpIn:
		return 7
	case OpManifestEqual, OpManifestUnequal:
		return 6
	case OpBitwiseAnd:
		return 5
	case OpBitwiseXor:
		return 4
	case OpBitwiseOr:
		return 3
	case OpAnd:
		return 2
	case OpOr:
		return 1
	}
	return 0
}

// BinaryOperatorOf parses the textual form of a binary operator
func BinaryOperatorOf(s string) (BinaryOperator, bool) {
	for op, str := range binaryOperators {
		if str == s {
			return op, true
		}
	}
	return 0, false
}

type UnaryOperator int

const (
	OpNot UnaryOperator = iota
	OpBitwiseNot
	OpPlusUnary
	OpMinusUnary
)

var unaryOperators = map[UnaryOperator]string{
	OpNot:        "!",
	OpBitwiseNot: "~",
	OpPlusUnary:  "+",
	OpMinusUnary: "-",
}

func (op UnaryOperator) String() string {
	if s, ok := unaryOperators[op]; ok {
		return s
	}
	return "<invalid>"
}

func UnaryOperatorOf(s string) (UnaryOperator, bool) {
	for op, str := range unaryOperators {
		if str == s {
			return op, true
		}
	}
	return 0, false
}
