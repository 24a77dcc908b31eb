package gl

// GL enums used by the renderer.
const (
	LineLoop  = 0x0002
	Triangles = 0x0004
	Quads     = 0x0007

	ColorBufferBit = 0x00004000
	DepthBufferBit = 0x00000100

	LineSmooth          = 0x0B20
	PolygonSmooth       = 0x0B41
	Lighting            = 0x0B50
	ColorMaterial       = 0x0B57
	DepthTest           = 0x0B71
	Normalize           = 0x0BA1
	Blend               = 0x0BE2
	Multisample         = 0x809D
	TextureRectangle    = 0x84F5
	Light0              = 0x4000
	PerspectiveCorrHint = 0x0C50
	LineSmoothHint      = 0x0C52
	PolygonSmoothHint   = 0x0C53
	Nicest              = 0x1102

	Smooth = 0x1D01
	Lequal = 0x0203

	Projection = 0x1701
	Modelview  = 0x1700

	SrcAlpha         = 0x0302
	OneMinusSrcAlpha = 0x0303
	One              = 1

	FrontAndBack      = 0x0408
	AmbientAndDiffuse = 0x1602
	Fill              = 0x1B02

	Ambient           = 0x1200
	Diffuse           = 0x1201
	Position          = 0x1203
	LightModelTwoSide = 0x0B52

	TextureEnv       = 0x2300
	TextureEnvMode   = 0x2200
	Modulate         = 0x2100
	TextureMinFilter = 0x2801
	TextureMagFilter = 0x2800
	Linear           = 0x2601
	UnpackAlignment  = 0x0CF5
	RGB              = 0x1907
	RGBA             = 0x1908
	LuminanceAlpha   = 0x190A
	UnsignedByte     = 0x1401
)

// Render opcodes from the GLX protocol.
const (
	OpBegin          = 4
	OpColor3fv       = 8
	OpColor4fv       = 16
	OpEnd            = 23
	OpNormal3fv      = 30
	OpTexCoord2fv    = 54
	OpVertex3fv      = 70
	OpColorMaterial  = 78
	OpHint           = 85
	OpLightfv        = 87
	OpLightModelf    = 90
	OpLineWidth      = 95
	OpPolygonMode    = 101
	OpShadeModel     = 104
	OpTexParameterf  = 105
	OpTexImage2D     = 110
	OpTexEnvi        = 113
	OpClear          = 127
	OpClearColor     = 130
	OpDisable        = 138
	OpEnable         = 139
	OpBlendFunc      = 160
	OpDepthFunc      = 164
	OpFrustum        = 175
	OpLoadIdentity   = 176
	OpMatrixMode     = 179
	OpOrtho          = 182
	OpPopMatrix      = 183
	OpPushMatrix     = 184
	OpRotatef        = 186
	OpTranslatef     = 190
	OpViewport       = 191
	OpBindTexture    = 4117
	OpCopyTexImage2D = 4120
)
