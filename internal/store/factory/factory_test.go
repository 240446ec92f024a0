package factory

import (
	"testing"

	"github.com/ecowave/ecowave-hub/internal/config"
	"github.com/ecowave/ecowave-hub/internal/store/reststore"
)

func restDeps() Deps {
	return Deps{Cfg: config.Config{
		DataBackend: config.BackendREST,
		RESTBaseURL: "http://backend.test",
	}}
}

func TestResolveReturnsSameInstance(t *testing.T) {
	Set(nil)
	t.Cleanup(func() { Set(nil) })

	first := Resolve(restDeps())
	second := Resolve(restDeps())
	if first != second {
		t.Fatalf("Resolve() returned different instances across calls")
	}
}

func TestSetOverridesSubsequentResolves(t *testing.T) {
	Set(nil)
	t.Cleanup(func() { Set(nil) })

	held := Resolve(restDeps())

	replacement := reststore.New("http://other.test", "tok")
	Set(replacement)

	if got := Resolve(restDeps()); got != replacement {
		t.Fatalf("Resolve() after Set should return the override")
	}
	if held == replacement {
		t.Fatalf("previously held reference must not be rewritten by Set")
	}
}
