package match

import (
	"errors"
	"testing"

	. "github.com/Comcast/trindi/util/testutil"
)

func TestMatch(t *testing.T) {
	type test struct {
		name    string
		pattern string
		fact    string
		want    string // Bindings as JSON, or "" for no match.
	}
	for _, tst := range []test{
		{"const", `"paris"`, `"paris"`, `{}`},
		{"const fail", `"paris"`, `"london"`, ``},
		{"var", `"?x"`, `"paris"`, `{"?x":"paris"}`},
		{"anon", `{"city":"?"}`, `{"city":"paris"}`, `{}`},
		{"map", `{"how":"plane","price":"?x"}`, `{"how":"plane","dest_city":"paris","price":"1234"}`, `{"?x":"1234"}`},
		{"map fail", `{"how":"train","price":"?x"}`, `{"how":"plane","price":"1234"}`, ``},
		{"missing", `{"how":"plane","month":"?x"}`, `{"how":"plane"}`, ``},
		{"optional", `{"how":"plane","month":"??m"}`, `{"how":"plane"}`, `{}`},
		{"repeated var", `{"dept_city":"?c","dest_city":"?c"}`, `{"dept_city":"paris","dest_city":"paris"}`, `{"?c":"paris"}`},
		{"repeated var fail", `{"dept_city":"?c","dest_city":"?c"}`, `{"dept_city":"paris","dest_city":"berlin"}`, ``},
		{"numbers", `{"n":3}`, `{"n":3.0}`, `{}`},
		{"array", `["?a","b"]`, `["a","b"]`, `{"?a":"a"}`},
		{"array length", `["?a"]`, `["a","b"]`, ``},
		{"nested", `{"row":{"price":"?p"}}`, `{"row":{"price":1234}}`, `{"?p":1234}`},
		{"nil", `null`, `null`, `{}`},
		{"bool", `true`, `false`, ``},
	} {
		t.Run(tst.name, func(t *testing.T) {
			bss, err := Matches(Dwimjs(tst.pattern), Dwimjs(tst.fact))
			if err != nil {
				t.Fatal(err)
			}
			if tst.want == "" {
				if bss != nil {
					t.Fatalf("unexpected match %s", JS(bss))
				}
				return
			}
			if len(bss) != 1 {
				t.Fatalf("expected one set of bindings, not %s", JS(bss))
			}
			if got := JS(bss[0]); got != tst.want {
				t.Fatalf("%s != %s", got, tst.want)
			}
		})
	}
}

func TestMatchInitialBindings(t *testing.T) {
	bs := bindingsOf("?c", "paris")
	bss, err := Match(map[string]interface{}{"dest_city": "?c", "price": "?p"},
		map[string]interface{}{"dest_city": "paris", "price": 99}, bs)
	if err != nil {
		t.Fatal(err)
	}
	if len(bss) != 1 || bss[0]["?p"] != 99.0 {
		t.Fatal(JS(bss))
	}
	if _, have := bs["?p"]; have {
		t.Fatal("initial bindings modified")
	}

	if bss, _ = Match("?c", "berlin", bs); bss != nil {
		t.Fatal(JS(bss))
	}
}

func TestMatchYAMLMaps(t *testing.T) {
	fact := map[interface{}]interface{}{"how": "plane", "price": 1234}
	bss, err := Matches(map[string]interface{}{"price": "?p"}, fact)
	if err != nil {
		t.Fatal(err)
	}
	if len(bss) != 1 || bss[0]["?p"] != 1234.0 {
		t.Fatal(JS(bss))
	}
}

func TestMatchPropertyVariable(t *testing.T) {
	_, err := Matches(map[string]interface{}{"?k": "paris", "how": "plane"}, map[string]interface{}{"how": "plane"})
	if !errors.Is(err, ErrPropertyVariable) {
		t.Fatal(err)
	}
}

func bindingsOf(pairs ...interface{}) Bindings {
	bs := make(Bindings)
	for i := 0; i+1 < len(pairs); i += 2 {
		bs[pairs[i].(string)] = pairs[i+1]
	}
	return bs
}
