package demos

import (
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-viewport/engine"
	"github.com/Carmen-Shannon/oxy-viewport/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewport/engine/geometry"
	"github.com/Carmen-Shannon/oxy-viewport/engine/light"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewport/engine/texture"
	"github.com/rs/zerolog"
)

const (
	mapTexturePath   = "texture/map.png"
	alphaTexturePath = "texture/alpha.png"
	hdrPath          = "textures/hdr/street.hdr"
	envMapDir        = "textures/envMaps/1"
)

var envMapFaces = [6]string{"px.jpg", "nx.jpg", "py.jpg", "ny.jpg", "pz.jpg", "nz.jpg"}

func init() {
	register(Demo{Name: "basic-texture", Description: "cube with a mirrored, repeated map and a logging loading manager", Setup: setupBasicTexture})
	register(Demo{Name: "opacity-texture", Description: "transparent cube cut by an alpha map next to a double-sided plane", Setup: setupOpacityTexture})
	register(Demo{Name: "pbr", Description: "standard material cube with a normal map and a displaced plane under ambient and directional light", Setup: setupPBR})
	register(Demo{Name: "cube-texture", Description: "metallic sphere reflecting a six-face environment used as background", Setup: setupCubeTexture})
	register(Demo{Name: "hdr", Description: "metallic sphere in an equirectangular HDR environment", Setup: setupHDR})
}

// loadingManager logs every stage of a demo's texture loads. Its callbacks run on loader
// goroutines and only log.
func loadingManager(logger zerolog.Logger) texture.LoadingManager {
	return texture.NewLoadingManager(
		texture.WithOnStart(func(url string, loaded, total int) {
			logger.Info().Str("url", url).Int("loaded", loaded).Int("total", total).Msg("texture load started")
		}),
		texture.WithOnProgress(func(url string, loaded, total int) {
			logger.Info().Str("url", url).Int("loaded", loaded).Int("total", total).
				Float64("percent", float64(loaded)*100/float64(total)).Msg("texture load progress")
		}),
		texture.WithOnLoad(func() {
			logger.Info().Msg("all textures loaded")
		}),
		texture.WithOnError(func(url string) {
			logger.Error().Str("url", url).Msg("texture load failed")
		}),
	)
}

func loaderOptions(env Env, manager texture.LoadingManager) []texture.LoaderBuilderOption {
	return []texture.LoaderBuilderOption{
		texture.WithManager(manager),
		texture.WithLogger(env.Logger),
		texture.WithWorkers(env.Workers),
		texture.WithPath(env.Assets),
	}
}

// logLoadError is an onError callback; the surface keeps rendering with its material color.
func logLoadError(logger zerolog.Logger) func(error) {
	return func(err error) {
		logger.Warn().Err(err).Msg("rendering without texture")
	}
}

func setupBasicTexture(eng engine.Engine, env Env) (*Instance, error) {
	inst := newInstance("basic-texture")
	lookFrom(eng, 1, 1, 8)

	inst.Loading = loadingManager(env.Logger)
	loader := texture.NewTextureLoader(loaderOptions(env, inst.Loading)...)
	mapTex := loader.Load(mapTexturePath, nil, nil, logLoadError(env.Logger))
	mapTex.SetOffset(0, 0)
	mapTex.SetRepeat(2, 1)
	mapTex.SetWrap(texture.MirroredRepeatWrapping, texture.RepeatWrapping)

	cube := game_object.NewGameObject(
		game_object.WithName("cube"),
		game_object.WithMesh(geometry.NewBoxGeometry(1, 1, 1), material.NewBasicMaterial(material.WithMap(mapTex))),
	)
	eng.Scene().Add(cube)
	inst.Objects["cube"] = cube
	inst.Objects["axes"] = axes(eng)
	orbit(eng)
	return inst, nil
}

func setupOpacityTexture(eng engine.Engine, env Env) (*Instance, error) {
	inst := newInstance("opacity-texture")
	lookFrom(eng, 1, 1, 8)

	inst.Loading = loadingManager(env.Logger)
	loader := texture.NewTextureLoader(loaderOptions(env, inst.Loading)...)
	onError := logLoadError(env.Logger)
	mapTex := loader.Load(mapTexturePath, nil, nil, onError)
	alphaTex := loader.Load(alphaTexturePath, nil, nil, onError)

	cube := game_object.NewGameObject(
		game_object.WithName("cube"),
		game_object.WithMesh(geometry.NewBoxGeometry(1, 1, 1), material.NewBasicMaterial(
			material.WithMap(mapTex),
			material.WithAlphaMap(alphaTex),
			material.WithTransparent(true),
		)),
	)
	plane := game_object.NewGameObject(
		game_object.WithName("plane"),
		game_object.WithPosition(2, 0, 0),
		game_object.WithMesh(geometry.NewPlaneGeometry(1, 1), material.NewBasicMaterial(
			material.WithMap(mapTex),
			material.WithSide(material.DoubleSide),
		)),
	)
	eng.Scene().Add(cube, plane)
	inst.Objects["cube"] = cube
	inst.Objects["plane"] = plane
	inst.Objects["axes"] = axes(eng)
	orbit(eng)
	return inst, nil
}

func setupPBR(eng engine.Engine, env Env) (*Instance, error) {
	inst := newInstance("pbr")
	lookFrom(eng, 3, 2, 5)

	inst.Loading = loadingManager(env.Logger)
	loader := texture.NewTextureLoader(loaderOptions(env, inst.Loading)...)
	onError := logLoadError(env.Logger)
	mapTex := loader.Load(mapTexturePath, nil, nil, onError)
	displacementTex := loader.Load(mapTexturePath, nil, nil, onError)

	cube := game_object.NewGameObject(
		game_object.WithName("cube"),
		game_object.WithMesh(geometry.NewBoxGeometry(2, 2, 2, 20, 20, 20), material.NewStandardMaterial(
			material.WithMap(mapTex),
			material.WithSide(material.DoubleSide),
			material.WithRoughness(0.1),
			material.WithMetalness(0.2),
			material.WithNormalMap(mapTex),
		)),
	)
	plane := game_object.NewGameObject(
		game_object.WithName("plane"),
		game_object.WithPosition(3, 0, 0),
		game_object.WithMesh(geometry.NewPlaneGeometry(2, 2, 20, 20), material.NewStandardMaterial(
			material.WithMap(mapTex),
			material.WithSide(material.DoubleSide),
			material.WithDisplacementMap(displacementTex, 0.1),
		)),
	)
	ambient := game_object.NewGameObject(
		game_object.WithName("ambient"),
		game_object.WithLight(light.NewAmbientLight(0xffffff, 0.4)),
	)
	sun := game_object.NewGameObject(
		game_object.WithName("sun"),
		game_object.WithPosition(5, 7, 10),
		game_object.WithLight(light.NewDirectionalLight(0xf5f5f5, 1)),
	)
	eng.Scene().Add(cube, plane, ambient, sun)
	inst.Objects["cube"] = cube
	inst.Objects["plane"] = plane
	inst.Objects["ambient"] = ambient
	inst.Objects["sun"] = sun
	inst.Objects["axes"] = axes(eng)
	orbit(eng)
	return inst, nil
}

func setupCubeTexture(eng engine.Engine, env Env) (*Instance, error) {
	inst := newInstance("cube-texture")
	lookFrom(eng, 3, 2, 5)

	inst.Loading = loadingManager(env.Logger)
	loader := texture.NewCubeTextureLoader(loaderOptions(env, inst.Loading)...)
	envMap := loader.SetPath(filepath.Join(env.Assets, envMapDir)).Load(envMapFaces, nil, nil, logLoadError(env.Logger))

	sphere := game_object.NewGameObject(
		game_object.WithName("sphere"),
		game_object.WithMesh(geometry.NewSphereGeometry(2, 50, 50), material.NewStandardMaterial(
			material.WithRoughness(0),
			material.WithMetalness(0.8),
		)),
	)
	sun := game_object.NewGameObject(
		game_object.WithName("sun"),
		game_object.WithPosition(-2, 0, 0),
		game_object.WithLight(light.NewDirectionalLight(0xf5f5f5, 0.8)),
	)
	eng.Scene().Add(sphere, sun)
	eng.Scene().SetBackground(envMap)
	eng.Scene().SetEnvironment(envMap)
	inst.Objects["sphere"] = sphere
	inst.Objects["sun"] = sun
	orbit(eng)
	return inst, nil
}

func setupHDR(eng engine.Engine, env Env) (*Instance, error) {
	inst := newInstance("hdr")
	lookFrom(eng, 1, 1, 8)

	inst.Loading = loadingManager(env.Logger)
	loader := texture.NewRGBELoader(loaderOptions(env, inst.Loading)...)

	sphere := game_object.NewGameObject(
		game_object.WithName("sphere"),
		game_object.WithMesh(geometry.NewSphereGeometry(2), material.NewStandardMaterial(
			material.WithMetalness(0.9),
			material.WithRoughness(0.1),
		)),
	)
	ambient := game_object.NewGameObject(
		game_object.WithName("ambient"),
		game_object.WithLight(light.NewAmbientLight(0xffffff, 1)),
	)
	eng.Scene().Add(sphere, ambient)
	inst.Objects["sphere"] = sphere
	inst.Objects["ambient"] = ambient
	orbit(eng)

	go func() {
		tex, err := loader.LoadAsync(env.Context, hdrPath)
		if err != nil {
			env.Logger.Warn().Err(err).Str("url", hdrPath).Msg("rendering without environment")
			return
		}
		eng.Post(func() {
			tex.SetMapping(texture.EquirectangularReflectionMapping)
			eng.Scene().SetBackground(tex)
			eng.Scene().SetEnvironment(tex)
		})
	}()
	return inst, nil
}
