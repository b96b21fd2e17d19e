package glbackend

import (
	"strings"

	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/logger"
)

// Flavour is the GL API variant behind the context.
type Flavour int

const (
	GL33Core Flavour = iota
	GLES3
)

func (f Flavour) String() string {
	if f == GLES3 {
		return "gles3"
	}
	return "gl33core"
}

// Limit is an implementation-defined integer limit.
type Limit int

const (
	LimitMaxTextureSize Limit = iota
	LimitMaxCubeMapTextureSize
	LimitMaxViewPortWidth
	LimitMaxViewPortHeight
	LimitMaxVertexAttribs
	LimitMaxVertexUniformComponents
	LimitMaxCombinedTextureImageUnits
	LimitMaxVertexTextureImageUnits
	LimitMaxFragmentUniformComponents
	LimitMaxColorAttachments
	numLimits
)

// Caps holds the features and limits of the current context, queried once
// at renderer setup.
type Caps struct {
	Flavour  Flavour
	Version  string
	limits   [numLimits]int
	features [core.NumFeatures]bool
}

func queryCaps(fn Functions) *Caps {
	c := &Caps{Version: fn.GetString(glVersion)}
	if strings.Contains(c.Version, "OpenGL ES") {
		c.Flavour = GLES3
	}

	c.features[core.FeatureInstancing] = true
	c.features[core.FeatureTextureFloat] = true
	c.features[core.FeatureTextureHalfFloat] = true
	c.features[core.FeatureMultipleRenderTarget] = true
	c.features[core.FeatureMSAARenderTargets] = true
	c.features[core.FeaturePackedVertexFormat10_2] = true
	c.features[core.FeatureTexture3D] = true
	c.features[core.FeatureTextureArray] = true
	c.features[core.FeatureNativeTexture] = true
	c.features[core.FeatureOriginBottomLeft] = true
	switch c.Flavour {
	case GL33Core:
		c.features[core.FeatureTextureCompressionDXT] = true
	case GLES3:
		c.features[core.FeatureTextureCompressionETC2] = true
		ext := fn.GetString(glExtensions)
		c.features[core.FeatureTextureCompressionDXT] = strings.Contains(ext, "_texture_compression_s3tc") ||
			strings.Contains(ext, "_compressed_texture_s3tc") ||
			strings.Contains(ext, "_texture_compression_dxt1")
		c.features[core.FeatureTextureCompressionPVRTC] = strings.Contains(ext, "_texture_compression_pvrtc") ||
			strings.Contains(ext, "_compressed_texture_pvrtc")
		c.features[core.FeatureTextureCompressionATC] = strings.Contains(ext, "_compressed_ATC_texture") ||
			strings.Contains(ext, "_compressed_texture_atc")
	}

	c.limits[LimitMaxTextureSize] = int(fn.GetIntegerv(glMaxTextureSize))
	c.limits[LimitMaxCubeMapTextureSize] = int(fn.GetIntegerv(glMaxCubeMapTextureSize))
	// GL_MAX_VIEWPORT_DIMS is a pair; Functions only returns the first value
	c.limits[LimitMaxViewPortWidth] = int(fn.GetIntegerv(glMaxViewportDims))
	c.limits[LimitMaxViewPortHeight] = c.limits[LimitMaxViewPortWidth]
	c.limits[LimitMaxVertexAttribs] = int(fn.GetIntegerv(glMaxVertexAttribs))
	c.limits[LimitMaxVertexUniformComponents] = int(fn.GetIntegerv(glMaxVertexUniformComponents))
	c.limits[LimitMaxCombinedTextureImageUnits] = int(fn.GetIntegerv(glMaxCombinedTextureImageUnits))
	c.limits[LimitMaxVertexTextureImageUnits] = int(fn.GetIntegerv(glMaxVertexTextureImageUnits))
	c.limits[LimitMaxFragmentUniformComponents] = int(fn.GetIntegerv(glMaxFragmentUniformComponents))
	c.limits[LimitMaxColorAttachments] = int(fn.GetIntegerv(glMaxColorAttachments))

	logger.With(logger.Fields{
		"version":  c.Version,
		"vendor":   fn.GetString(glVendor),
		"renderer": fn.GetString(glRendererString),
		"glsl":     fn.GetString(glShadingLanguageVersion),
		"flavour":  c.Flavour,
	}).Info("gl: context ready")
	logger.Dbg("gl: max texture size %d, vertex attribs %d, color attachments %d",
		c.limits[LimitMaxTextureSize], c.limits[LimitMaxVertexAttribs], c.limits[LimitMaxColorAttachments])
	return c
}

func (c *Caps) HasFeature(f core.Feature) bool {
	if f >= core.NumFeatures {
		return false
	}
	return c.features[f]
}

func (c *Caps) Limit(l Limit) int {
	if l < 0 || l >= numLimits {
		return 0
	}
	return c.limits[l]
}

// HasTextureFormat reports whether textures of format f can be created.
// Uncompressed formats are always supported.
func (c *Caps) HasTextureFormat(f core.PixelFormat) bool {
	switch {
	case f.IsDXT():
		return c.HasFeature(core.FeatureTextureCompressionDXT)
	case f.IsPVRTC():
		return c.HasFeature(core.FeatureTextureCompressionPVRTC)
	case f.IsETC2():
		return c.HasFeature(core.FeatureTextureCompressionETC2)
	case f.IsCompressed():
		return false
	}
	return f < core.NumPixelFormats
}

// ShaderLang is the shading language the context compiles.
func (c *Caps) ShaderLang() core.ShaderLang {
	if c.Flavour == GLES3 {
		return core.GLSLES3
	}
	return core.GLSL330
}
