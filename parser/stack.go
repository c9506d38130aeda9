/*
File    : tinymoe/parser/stack.go
*/
package parser

// GrammarStackItem is an append-only set of symbols representing one
// lexical scope: a module, a function body, or a block body.
type GrammarStackItem struct {
	Symbols []*GrammarSymbol
}

// NewGrammarStackItem creates an empty scope item.
func NewGrammarStackItem() *GrammarStackItem {
	return &GrammarStackItem{}
}

// AddSymbol finalizes the symbol's unique-id and appends it to the scope.
func (item *GrammarStackItem) AddSymbol(sym *GrammarSymbol) {
	sym.CalculateUniqueId()
	item.Symbols = append(item.Symbols, sym)
}

// FillPredefinedSymbols populates the item with every built-in rule of the
// language: the predefined type names, the primitive phrases, the control
// sentences and the select block. A caller preparing a grammar stack for a
// module body pushes one item filled this way below the module's own
// declarations.
func (item *GrammarStackItem) FillPredefinedSymbols() {
	// Types
	item.AddSymbol(NewPredefinedSymbol(KindType, TargetArray).AppendName("array"))
	item.AddSymbol(NewPredefinedSymbol(KindType, TargetString).AppendName("string"))
	item.AddSymbol(NewPredefinedSymbol(KindType, TargetInteger).AppendName("integer"))
	item.AddSymbol(NewPredefinedSymbol(KindType, TargetFloat).AppendName("float"))
	item.AddSymbol(NewPredefinedSymbol(KindType, TargetSymbol).AppendName("symbol"))

	// Primitives
	item.AddSymbol(NewPredefinedSymbol(KindPhrase, TargetTrue).
		AppendName("true"))
	item.AddSymbol(NewPredefinedSymbol(KindPhrase, TargetFalse).
		AppendName("false"))
	item.AddSymbol(NewPredefinedSymbol(KindPhrase, TargetNull).
		AppendName("null"))
	item.AddSymbol(NewPredefinedSymbol(KindPhrase, TargetNewType).
		AppendName("new").AppendHole(TypeFragment))
	item.AddSymbol(NewPredefinedSymbol(KindPhrase, TargetNewArray).
		AppendName("new").AppendName("array").AppendName("of").AppendHole(ExpressionFragment).AppendName("items"))
	item.AddSymbol(NewPredefinedSymbol(KindPhrase, TargetGetArrayItem).
		AppendName("item").AppendHole(ExpressionFragment).AppendName("of").AppendName("array").AppendHole(PrimitiveFragment))
	item.AddSymbol(NewPredefinedSymbol(KindPhrase, TargetGetArrayLength).
		AppendName("length").AppendName("of").AppendName("array").AppendHole(PrimitiveFragment))
	item.AddSymbol(NewPredefinedSymbol(KindPhrase, TargetInvoke).
		AppendName("invoke").AppendHole(PrimitiveFragment))
	item.AddSymbol(NewPredefinedSymbol(KindPhrase, TargetInvokeWith).
		AppendName("invoke").AppendHole(ExpressionFragment).AppendName("with").AppendHole(ListFragment))
	item.AddSymbol(NewPredefinedSymbol(KindPhrase, TargetIsType).
		AppendHole(PrimitiveFragment).AppendName("is").AppendHole(TypeFragment))
	item.AddSymbol(NewPredefinedSymbol(KindPhrase, TargetIsNotType).
		AppendHole(PrimitiveFragment).AppendName("is").AppendName("not").AppendHole(TypeFragment))
	item.AddSymbol(NewPredefinedSymbol(KindPhrase, TargetGetField).
		AppendName("field").AppendHole(ArgumentFragment).AppendName("of").AppendHole(PrimitiveFragment))

	// Sentences
	item.AddSymbol(NewPredefinedSymbol(KindSentence, TargetEnd).
		AppendName("end"))
	item.AddSymbol(NewPredefinedSymbol(KindSentence, TargetExit).
		AppendName("exit"))
	item.AddSymbol(NewPredefinedSymbol(KindSentence, TargetCase).
		AppendName("case").AppendHole(ExpressionFragment))
	item.AddSymbol(NewPredefinedSymbol(KindSentence, TargetCall).
		AppendName("call").AppendHole(ExpressionFragment))
	item.AddSymbol(NewPredefinedSymbol(KindSentence, TargetRedirectTo).
		AppendName("redirect").AppendName("to").AppendHole(ExpressionFragment))
	item.AddSymbol(NewPredefinedSymbol(KindSentence, TargetAssign).
		AppendName("set").AppendHole(AssignableFragment).AppendName("to").AppendHole(ExpressionFragment))
	item.AddSymbol(NewPredefinedSymbol(KindSentence, TargetSetArrayItem).
		AppendName("set").AppendName("item").AppendHole(ExpressionFragment).AppendName("of").AppendName("array").AppendHole(ExpressionFragment).AppendName("to").AppendHole(ExpressionFragment))
	item.AddSymbol(NewPredefinedSymbol(KindSentence, TargetSetField).
		AppendName("set").AppendName("field").AppendHole(ArgumentFragment).AppendName("of").AppendHole(ExpressionFragment).AppendName("to").AppendHole(ExpressionFragment))

	// Blocks
	item.AddSymbol(NewPredefinedSymbol(KindBlock, TargetSelect).
		AppendName("select").AppendHole(ExpressionFragment))
}

// GrammarStack is an ordered list of scope items plus a flattened lookup
// index over every pushed symbol. The index is a multimap from unique-id to
// the symbols pushed under that id, in push order, so that the last-pushed
// symbol for any unique-id is the active one.
//
// The stack is the only mutable state of a parse and is confined to one
// parsing task; concurrent parses must use independent stacks.
type GrammarStack struct {
	StackItems []*GrammarStackItem

	// available symbols grouped by the unique identifier;
	// the last symbol overrides all other symbols in the same group
	available map[string][]*GrammarSymbol
	// every pushed symbol in push order, for deterministic kind scans
	order []*GrammarSymbol
}

// NewGrammarStack creates an empty grammar stack.
func NewGrammarStack() *GrammarStack {
	return &GrammarStack{
		available: make(map[string][]*GrammarSymbol),
	}
}

// Push opens a scope: the item's symbols all become visible, shadowing any
// earlier symbol with the same unique-id.
func (stack *GrammarStack) Push(item *GrammarStackItem) {
	stack.StackItems = append(stack.StackItems, item)
	for _, sym := range item.Symbols {
		stack.index(sym)
	}
}

// Pop closes the innermost scope, removing exactly the insertions Push and
// DeclareSymbol made for it, and returns the item.
func (stack *GrammarStack) Pop() *GrammarStackItem {
	n := len(stack.StackItems)
	if n == 0 {
		return nil
	}
	item := stack.StackItems[n-1]
	stack.StackItems = stack.StackItems[:n-1]
	for _, sym := range item.Symbols {
		stack.unindex(sym)
	}
	return item
}

// DeclareSymbol registers a symbol into the innermost scope. This is how
// assignable and argument holes introduce fresh symbols at statement
// commit time; the enclosing Pop removes them with the scope.
func (stack *GrammarStack) DeclareSymbol(sym *GrammarSymbol) {
	n := len(stack.StackItems)
	if n == 0 {
		stack.Push(NewGrammarStackItem())
		n = 1
	}
	sym.CalculateUniqueId()
	stack.StackItems[n-1].Symbols = append(stack.StackItems[n-1].Symbols, sym)
	stack.index(sym)
}

// Lookup returns the most recently pushed symbol with the given unique-id,
// or nil if none is in scope.
func (stack *GrammarStack) Lookup(uniqueId string) *GrammarSymbol {
	group := stack.available[uniqueId]
	if len(group) == 0 {
		return nil
	}
	return group[len(group)-1]
}

// SymbolsOfKind returns the active symbols whose kind set intersects the
// given flags, in push order. A symbol shadowed by a later push of the
// same unique-id is skipped: only the innermost occurrence is active. The
// working set is small (hundreds of symbols), so the linear scan is cheap.
func (stack *GrammarStack) SymbolsOfKind(flags GrammarSymbolKind) []*GrammarSymbol {
	result := make([]*GrammarSymbol, 0, len(stack.order))
	for _, sym := range stack.order {
		if !sym.Kind.Has(flags) {
			continue
		}
		if stack.Lookup(sym.UniqueId) != sym {
			continue
		}
		result = append(result, sym)
	}
	return result
}

// Depth returns the number of open scopes. Scope balance is an invariant:
// a parse leaves the depth exactly as it found it, error paths included.
func (stack *GrammarStack) Depth() int {
	return len(stack.StackItems)
}

// index adds one symbol to the flattened lookup structures.
func (stack *GrammarStack) index(sym *GrammarSymbol) {
	stack.available[sym.UniqueId] = append(stack.available[sym.UniqueId], sym)
	stack.order = append(stack.order, sym)
}

// unindex removes one symbol from the flattened lookup structures,
// matching by identity so shadowed symbols with the same unique-id are
// left untouched.
func (stack *GrammarStack) unindex(sym *GrammarSymbol) {
	group := stack.available[sym.UniqueId]
	for i := len(group) - 1; i >= 0; i-- {
		if group[i] == sym {
			group = append(group[:i], group[i+1:]...)
			break
		}
	}
	if len(group) == 0 {
		delete(stack.available, sym.UniqueId)
	} else {
		stack.available[sym.UniqueId] = group
	}
	for i := len(stack.order) - 1; i >= 0; i-- {
		if stack.order[i] == sym {
			stack.order = append(stack.order[:i], stack.order[i+1:]...)
			break
		}
	}
}
