// Package translator rewrites WebGL2 (GLSL ES 3.00) shaders as desktop
// GLSL 4.10 using goshadertranslator.
package translator

import (
	"context"
	"fmt"

	"github.com/richinsley/glshapes/graphics"
	"github.com/richinsley/glshapes/shader"
	gst "github.com/richinsley/goshadertranslator"
)

// Translator implements shader.Translator.
type Translator struct {
	st *gst.ShaderTranslator
}

// New starts a translator producing GLSL 4.10 core.
func New(ctx context.Context) (*Translator, error) {
	st, err := gst.NewShaderTranslator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start shader translator: %w", err)
	}
	return &Translator{st: st}, nil
}

func (t *Translator) Translate(stage graphics.Stage, source string) (*shader.Translation, error) {
	res, err := t.st.TranslateShader(source, stage.String(), gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}

	names := make(map[string]string, len(res.Variables))
	for name, v := range res.Variables {
		names[name] = v.MappedName
	}
	return &shader.Translation{Code: res.Code, Names: names}, nil
}

var _ shader.Translator = (*Translator)(nil)
