package expr

import (
	"github.com/randalmurphal/mathconv/pkg/mathconv/function"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

// Program is a compiled formula.
type Program struct {
	Source string
	Root   Node
	// Pure is false when the formula calls a function such as Now whose
	// result varies between calls. The program itself is still cacheable;
	// only its results are not.
	Pure bool
}

// Compile parses src into a Program using the functions in cat. A nil cat
// means the built-in functions.
func Compile(src string, cat *function.Catalogue) (*Program, error) {
	root, err := Parse(src, cat)
	if err != nil {
		return nil, err
	}
	pure := true
	Inspect(root, func(n Node) bool {
		if call, ok := n.(*Call); ok && !call.Func.Pure {
			pure = false
		}
		return pure
	})
	return &Program{Source: src, Root: root, Pure: pure}, nil
}

// Eval evaluates the program against env.
func (p *Program) Eval(env *Env) (value.Value, error) {
	return Eval(p.Root, env)
}

// String returns the canonical form of the formula.
func (p *Program) String() string {
	return p.Root.String()
}

// Engine compiles formulas against a function catalogue, reusing compiled
// programs through an optional cache.
type Engine struct {
	catalogue *function.Catalogue
	cache     *Cache
}

// NewEngine creates an engine. A nil catalogue means the built-in
// functions; a nil cache disables caching.
func NewEngine(cat *function.Catalogue, cache *Cache) *Engine {
	if cat == nil {
		cat = function.Builtins()
	}
	return &Engine{catalogue: cat, cache: cache}
}

// Catalogue returns the engine's function catalogue.
func (e *Engine) Catalogue() *function.Catalogue {
	return e.catalogue
}

// Cache returns the engine's cache, or nil when caching is disabled.
func (e *Engine) Cache() *Cache {
	return e.cache
}

// Compile returns the program for src and whether it came from the cache.
func (e *Engine) Compile(src string) (*Program, bool, error) {
	if e.cache == nil {
		p, err := Compile(src, e.catalogue)
		return p, false, err
	}
	return e.cache.GetOrCompile(src, func(s string) (*Program, error) {
		return Compile(s, e.catalogue)
	})
}

// Evaluate compiles src, if needed, and evaluates it against env.
func (e *Engine) Evaluate(src string, env *Env) (value.Value, error) {
	p, _, err := e.Compile(src)
	if err != nil {
		return value.Null(), err
	}
	return p.Eval(env)
}
