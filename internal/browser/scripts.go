package browser

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// jsString renders a Go string as a JS string literal.
func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

// frameRootExpr is the JS expression for a frame's document. Index -1 is the
// main document; embedded frames go through contentDocument, which is null
// for cross-origin frames, and every script degrades gracefully on null.
func frameRootExpr(index int) string {
	if index < 0 {
		return "document"
	}
	return fmt.Sprintf("document.querySelectorAll('iframe')[%d] && document.querySelectorAll('iframe')[%d].contentDocument", index, index)
}

const frameCountScript = `document.querySelectorAll('iframe').length`

// snapshotScript enumerates a frame's interactive elements, parks live
// references in a per-frame registry and returns their metadata. Element
// handles returned to Go are plain registry indices; they stay valid until
// the next snapshot or navigation. With formScoped set, enumeration is
// limited to the outermost form (else the body), so a header search box or
// footer newsletter input never joins a candidate's field set.
func snapshotScript(root string, formScoped bool) string {
	scope := "d"
	if formScoped {
		scope = "(d.querySelector('form') || d.body)"
	}
	return fmt.Sprintf(`(() => {
	const d = %s;
	if (!d || !d.body) { return []; }
	const els = Array.from(%s.querySelectorAll('input, textarea, select'));
	d.defaultView.__fpFields = els;
	const labelFor = (el) => {
		let t = '';
		if (el.id) {
			const l = d.querySelector('label[for="' + CSS.escape(el.id) + '"]');
			if (l) { t = l.textContent; }
		}
		if (!t) { const c = el.closest('label'); if (c) { t = c.textContent; } }
		if (!t) { t = el.getAttribute('aria-label') || ''; }
		return t.replace(/\s+/g, ' ').trim();
	};
	return els.map((el) => ({
		tag: el.tagName.toLowerCase(),
		type: (el.getAttribute('type') || '').toLowerCase(),
		name: el.getAttribute('name') || '',
		id: el.id || '',
		placeholder: el.getAttribute('placeholder') || '',
		label: labelFor(el),
		options: el.tagName === 'SELECT'
			? Array.from(el.options).map((o) => ({ text: (o.textContent || '').trim(), value: o.value }))
			: [],
	}));
})()`, root, scope)
}

func countInteractiveScript(root string) string {
	return fmt.Sprintf(`(() => {
	const d = %s;
	if (!d || !d.body) { return 0; }
	return d.querySelectorAll('input:not([type=hidden]), textarea, select').length;
})()`, root)
}

func hasFormScript(root string) string {
	return fmt.Sprintf(`(() => {
	const d = %s;
	return !!(d && d.querySelector('form'));
})()`, root)
}

func matchesScript(root, selector string) string {
	return fmt.Sprintf(`(() => {
	const d = %s;
	if (!d) { return false; }
	try { return !!d.querySelector(%s); } catch (e) { return false; }
})()`, root, jsString(selector))
}

// Click scripts return a tri-state: "clicked", "hidden" (a match exists but
// is not rendered yet, worth re-polling) or "absent" (stop immediately).

func clickVisibleScript(root, selector string) string {
	return fmt.Sprintf(`(() => {
	const d = %s;
	if (!d) { return 'absent'; }
	let els;
	try { els = d.querySelectorAll(%s); } catch (e) { return 'absent'; }
	for (const el of els) {
		const cs = d.defaultView.getComputedStyle(el);
		if (cs.display === 'none' || cs.visibility === 'hidden') { continue; }
		const r = el.getBoundingClientRect();
		if (r.width === 0 || r.height === 0) { continue; }
		el.click();
		return 'clicked';
	}
	return els.length ? 'hidden' : 'absent';
})()`, root, jsString(selector))
}

func clickAccessibleScript(root, namePattern string) string {
	return fmt.Sprintf(`(() => {
	const d = %s;
	if (!d) { return 'absent'; }
	const re = new RegExp(%s, 'i');
	const els = d.querySelectorAll('button, a, [role="button"], input[type="button"], input[type="submit"]');
	let sawMatch = false;
	for (const el of els) {
		const name = (el.getAttribute('aria-label') || el.textContent || el.value || el.getAttribute('title') || '').replace(/\s+/g, ' ').trim();
		if (!name || !re.test(name)) { continue; }
		sawMatch = true;
		const cs = d.defaultView.getComputedStyle(el);
		if (cs.display === 'none' || cs.visibility === 'hidden') { continue; }
		const r = el.getBoundingClientRect();
		if (r.width === 0 || r.height === 0) { continue; }
		el.click();
		return 'clicked';
	}
	return sawMatch ? 'hidden' : 'absent';
})()`, root, jsString(namePattern))
}

func setValueScript(root string, index int, value string) string {
	return fmt.Sprintf(`(() => {
	const d = %s;
	const el = d && d.defaultView.__fpFields ? d.defaultView.__fpFields[%d] : null;
	if (!el) { return false; }
	el.focus();
	el.value = %s;
	el.dispatchEvent(new Event('input', { bubbles: true }));
	el.dispatchEvent(new Event('change', { bubbles: true }));
	el.blur();
	return true;
})()`, root, index, jsString(value))
}

func selectValueScript(root string, index int, value string) string {
	return fmt.Sprintf(`(() => {
	const d = %s;
	const el = d && d.defaultView.__fpFields ? d.defaultView.__fpFields[%d] : null;
	if (!el) { return false; }
	el.value = %s;
	el.dispatchEvent(new Event('change', { bubbles: true }));
	return el.value === %s;
})()`, root, index, jsString(value), jsString(value))
}

func checkScript(root string, index int) string {
	return fmt.Sprintf(`(() => {
	const d = %s;
	const el = d && d.defaultView.__fpFields ? d.defaultView.__fpFields[%d] : null;
	if (!el) { return false; }
	if (!el.checked) { el.click(); }
	return !!el.checked;
})()`, root, index)
}

const linksScript = `(() => {
	return Array.from(document.querySelectorAll('a[href]')).map((a) => {
		const cs = window.getComputedStyle(a);
		const r = a.getBoundingClientRect();
		return {
			href: a.getAttribute('href') || '',
			text: (a.textContent || '').replace(/\s+/g, ' ').trim(),
			visible: cs.display !== 'none' && cs.visibility !== 'hidden' && r.width > 0 && r.height > 0,
		};
	});
})()`
