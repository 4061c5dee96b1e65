package parser

import (
	"reflect"
	"testing"

	"emblint/internal/core/errors"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p := NewParser(NewGrammarLoader())
	p.RegisterDefaultExtractors()
	return p
}

func TestJavaScriptExtraction_ModelProperties(t *testing.T) {
	p := newTestParser(t)

	code := `
import DS from 'ember-data';

export default DS.Model.extend({
  firstName: DS.attr('string'),
  lastName: DS.attr('string'),
  children: DS.hasMany('child'),
  fullName: Ember.computed('firstName', 'lastName', function() {
    return this.get('firstName') + ' ' + this.get('lastName');
  }),
});
`
	mod, err := p.ParseFile("app/models/person.js", []byte(code))
	if err != nil {
		t.Fatal(err)
	}

	if mod.ExportBody == nil {
		t.Fatal("expected export body")
	}
	if mod.ExportBody.Target != "DS.Model" {
		t.Errorf("expected target DS.Model, got %s", mod.ExportBody.Target)
	}

	want := []struct {
		name     string
		category PropertyCategory
	}{
		{"firstName", CategoryAttribute},
		{"lastName", CategoryAttribute},
		{"children", CategoryAssociation},
		{"fullName", CategoryComputedMultiLine},
	}
	props := mod.ExportBody.Properties
	if len(props) != len(want) {
		t.Fatalf("expected %d properties, got %d", len(want), len(props))
	}
	for i, w := range want {
		if props[i].Name != w.name || props[i].Category != w.category {
			t.Errorf("property %d: got %s/%s, want %s/%s",
				i, props[i].Name, props[i].Category, w.name, w.category)
		}
	}

	if props[0].Transform != "string" || props[0].ArgCount != 1 {
		t.Errorf("expected attr transform string, got %q (%d args)", props[0].Transform, props[0].ArgCount)
	}
}

func TestJavaScriptExtraction_AttrWithoutTransform(t *testing.T) {
	p := newTestParser(t)

	code := `
import DS from 'ember-data';

const kind = 'string';

export default DS.Model.extend({
  age: DS.attr(),
  name: DS.attr(''),
  other: DS.attr(kind),
});
`
	mod, err := p.ParseFile("app/models/person.js", []byte(code))
	if err != nil {
		t.Fatal(err)
	}
	props := mod.ExportBody.Properties
	if props[0].ArgCount != 0 || props[0].TransformLiteral {
		t.Errorf("expected zero args for age, got %+v", props[0])
	}
	if props[1].ArgCount != 1 || props[1].Transform != "" || !props[1].TransformLiteral {
		t.Errorf("expected empty string-literal transform for name, got %+v", props[1])
	}
	if props[2].ArgCount != 1 || props[2].TransformLiteral {
		t.Errorf("variable argument must not count as a string literal, got %+v", props[2])
	}
}

func TestJavaScriptExtraction_ComputedForms(t *testing.T) {
	p := newTestParser(t)

	code := `
import Component from '@ember/component';
import { computed } from '@ember/object';
import { alias } from '@ember/object/computed';

export default Component.extend({
  isVisible: alias('model.visible'),
  label: computed('name', {
    get() { return this.name; },
    set(key, value) { return value; }
  }),
});
`
	mod, err := p.ParseFile("app/components/badge.js", []byte(code))
	if err != nil {
		t.Fatal(err)
	}
	props := mod.ExportBody.Properties
	if props[0].Category != CategoryComputedSingleLine {
		t.Errorf("alias macro should be single-line computed, got %s", props[0].Category)
	}
	if props[1].Category != CategoryComputedMultiLine {
		t.Errorf("get/set pair should be multi-line computed, got %s", props[1].Category)
	}
}

func TestJavaScriptExtraction_LifecycleAndActions(t *testing.T) {
	p := newTestParser(t)

	code := `
import Component from '@ember/component';

export default Component.extend({
  count: 0,
  didInsertElement() {
    this._super(...arguments);
  },
  init() {
    this.set('items', []);
    this._super(...arguments);
  },
  actions: {
    save() {}
  },
});
`
	mod, err := p.ParseFile("app/components/counter.js", []byte(code))
	if err != nil {
		t.Fatal(err)
	}
	props := mod.ExportBody.Properties
	if props[0].Category != CategoryDefault {
		t.Errorf("count should be default, got %s", props[0].Category)
	}
	if props[1].Category != CategoryLifecycleHook {
		t.Errorf("didInsertElement should be a lifecycle hook, got %s", props[1].Category)
	}
	if props[1].Hook == nil || !props[1].Hook.SuperFirst || !props[1].Hook.ForwardsAll {
		t.Errorf("didInsertElement should record a forwarding super call, got %+v", props[1].Hook)
	}
	if props[2].Hook == nil || props[2].Hook.SuperFirst {
		t.Errorf("init super call is not first, got %+v", props[2].Hook)
	}
	if props[3].Category != CategoryActionsBlock {
		t.Errorf("actions should be the actions block, got %s", props[3].Category)
	}
}

func TestJavaScriptExtraction_SuperApplyForwarding(t *testing.T) {
	p := newTestParser(t)

	code := `
import Component from '@ember/component';

export default Component.extend({
  init: function() {
    this._super.apply(this, arguments);
    this.setup();
  },
});
`
	mod, err := p.ParseFile("app/components/box.js", []byte(code))
	if err != nil {
		t.Fatal(err)
	}
	hook := mod.ExportBody.Properties[0].Hook
	if hook == nil || !hook.SuperFirst || !hook.ForwardsAll {
		t.Errorf("apply-style super call should forward all arguments, got %+v", hook)
	}
}

func TestJavaScriptExtraction_Routes(t *testing.T) {
	p := newTestParser(t)

	code := `
import Ember from 'ember';

const Router = Ember.Router.extend({});

Router.map(function() {
  this.route('posts');
  this.route('post', { path: '/post/:postId' });
  this.route('user', { path: '/users/:user_id' });
});

export default Router;
`
	mod, err := p.ParseFile("app/router.js", []byte(code))
	if err != nil {
		t.Fatal(err)
	}
	if len(mod.Routes) != 2 {
		t.Fatalf("expected 2 dynamic segments, got %d: %+v", len(mod.Routes), mod.Routes)
	}
	if mod.Routes[0].Segment != "postId" || mod.Routes[0].Route != "post" {
		t.Errorf("unexpected first segment: %+v", mod.Routes[0])
	}
	if mod.Routes[1].Segment != "user_id" {
		t.Errorf("unexpected second segment: %+v", mod.Routes[1])
	}
}

func TestJavaScriptExtraction_NamespaceAccess(t *testing.T) {
	p := newTestParser(t)

	code := `
import Ember from 'ember';

const { computed } = Ember;

export default Ember.Component.extend({
  label: Ember.computed('name', function() {
    return this.get('name');
  }),
});
`
	mod, err := p.ParseFile("app/components/label.js", []byte(code))
	if err != nil {
		t.Fatal(err)
	}

	members := map[string]bool{}
	for _, access := range mod.NamespaceAccesses {
		members[access.Member] = true
	}
	if !members["computed"] {
		t.Errorf("expected destructured and member computed accesses, got %+v", mod.NamespaceAccesses)
	}
	if !members["Component"] {
		t.Errorf("expected Component namespace access, got %+v", mod.NamespaceAccesses)
	}
}

func TestJavaScriptExtraction_AccessorCalls(t *testing.T) {
	p := newTestParser(t)

	code := `
import Component from '@ember/component';
import { get } from '@ember/object';

export default Component.extend({
  read() {
    const a = this.get('name');
    const b = get(this, 'name');
    this.set('dirty', true);
    return a + b;
  },
});
`
	mod, err := p.ParseFile("app/components/reader.js", []byte(code))
	if err != nil {
		t.Fatal(err)
	}
	if len(mod.AccessorCalls) != 2 {
		t.Fatalf("expected 2 method-style accessor calls, got %d: %+v", len(mod.AccessorCalls), mod.AccessorCalls)
	}
	if mod.AccessorCalls[0].Method != "get" || mod.AccessorCalls[0].Receiver != "this" {
		t.Errorf("unexpected first accessor: %+v", mod.AccessorCalls[0])
	}
	if mod.AccessorCalls[1].Method != "set" {
		t.Errorf("unexpected second accessor: %+v", mod.AccessorCalls[1])
	}
}

func TestJavaScriptExtraction_Imports(t *testing.T) {
	p := newTestParser(t)

	code := `
import Ember from 'ember';
import { computed, observer as watch } from '@ember/object';
import * as utils from './utils';
`
	mod, err := p.ParseFile("app/lib/imports.js", []byte(code))
	if err != nil {
		t.Fatal(err)
	}
	if len(mod.Imports) != 3 {
		t.Fatalf("expected 3 imports, got %d", len(mod.Imports))
	}
	if mod.Imports[0].LocalName != "Ember" || mod.Imports[0].SourceModule != "ember" {
		t.Errorf("unexpected default import: %+v", mod.Imports[0])
	}
	if !reflect.DeepEqual(mod.Imports[1].Named, []string{"computed", "watch"}) {
		t.Errorf("unexpected named imports: %+v", mod.Imports[1].Named)
	}
	if !mod.Imports[2].IsNamespace || mod.Imports[2].LocalName != "utils" {
		t.Errorf("unexpected namespace import: %+v", mod.Imports[2])
	}
}

func TestJavaScriptExtraction_ParseError(t *testing.T) {
	p := newTestParser(t)

	code := "export default Component.extend({\n  label: 'unterminated\n});\n"
	_, err := p.ParseFile("app/components/broken.js", []byte(code))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !errors.IsCode(err, errors.CodeParseError) {
		t.Errorf("expected PARSE_ERROR, got %v", err)
	}
}

func TestJavaScriptExtraction_Deterministic(t *testing.T) {
	p := newTestParser(t)

	code := `
import DS from 'ember-data';

export default DS.Model.extend({
  name: DS.attr('string'),
  posts: DS.hasMany('post'),
});
`
	first, err := p.ParseFile("app/models/user.js", []byte(code))
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.ParseFile("app/models/user.js", []byte(code))
	if err != nil {
		t.Fatal(err)
	}

	// ParsedAt differs by construction; everything structural must not.
	first.ParsedAt = second.ParsedAt
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestParserRejectsUnsupportedLanguage(t *testing.T) {
	p := newTestParser(t)
	_, err := p.ParseFile("styles/app.css", []byte("body {}"))
	if !errors.IsCode(err, errors.CodeNotSupported) {
		t.Errorf("expected NOT_SUPPORTED, got %v", err)
	}
}
