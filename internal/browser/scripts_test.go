package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSStringEscapes(t *testing.T) {
	assert.Equal(t, `"plain"`, jsString("plain"))
	assert.Equal(t, `"it's \"quoted\""`, jsString(`it's "quoted"`))
	assert.Equal(t, `"line\nbreak"`, jsString("line\nbreak"))
}

func TestFrameRootExpr(t *testing.T) {
	assert.Equal(t, "document", frameRootExpr(-1))

	root := frameRootExpr(2)
	assert.Contains(t, root, "querySelectorAll('iframe')[2]")
	assert.Contains(t, root, "contentDocument")
}

func TestSnapshotScriptShape(t *testing.T) {
	script := snapshotScript(frameRootExpr(-1), false)

	assert.Contains(t, script, "__fpFields")
	assert.Contains(t, script, "input, textarea, select")
	assert.Contains(t, script, "CSS.escape")
	assert.Contains(t, script, "aria-label")
}

// The field pass enumerates inside the outermost form (else the body) so
// stray document-level inputs never join a candidate's field set; the select
// pass stays frame-wide because prefix dropdowns often sit outside the form.
func TestSnapshotScriptScoping(t *testing.T) {
	scoped := snapshotScript("document", true)
	assert.Contains(t, scoped, "(d.querySelector('form') || d.body).querySelectorAll")

	wide := snapshotScript("document", false)
	assert.NotContains(t, wide, "querySelector('form')")
	assert.Contains(t, wide, "d.querySelectorAll('input, textarea, select')")
}

func TestClickScriptsEmbedArguments(t *testing.T) {
	script := clickVisibleScript("document", `#onetrust-accept-btn-handler`)
	assert.Contains(t, script, `"#onetrust-accept-btn-handler"`)

	script = clickAccessibleScript("document", `accept|agree`)
	assert.Contains(t, script, `"accept|agree"`)
	assert.Contains(t, script, `'i'`)
}

func TestValueScriptsEmbedRegistryIndex(t *testing.T) {
	script := setValueScript("document", 4, "a@b.com")
	assert.Contains(t, script, "__fpFields[4]")
	assert.Contains(t, script, `"a@b.com"`)
	assert.True(t, strings.Contains(script, "dispatchEvent"))

	script = checkScript("document", 0)
	assert.Contains(t, script, "el.click()")
}
