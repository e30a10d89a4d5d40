package renderer

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vWorldPos;
out vec3 vNormal;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vWorldPos = world.xyz;
	vNormal = mat3(transpose(inverse(uModel))) * aNormal;
	gl_Position = uProjection * uView * world;
}
`

const fragmentShader = `
#version 410 core

#define MAX_LIGHTS 4

in vec3 vWorldPos;
in vec3 vNormal;

uniform vec4 uColor;
uniform vec3 uEye;
uniform vec3 uAmbient;
uniform vec3 uFillDir;
uniform int uLightCount;
uniform vec3 uLightPos[MAX_LIGHTS];
uniform vec3 uLightColor[MAX_LIGHTS];
uniform float uLightRange[MAX_LIGHTS];

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	vec3 v = normalize(uEye - vWorldPos);
	vec3 light = uAmbient + 0.3 * max(dot(n, normalize(uFillDir)), 0.0);
	vec3 spec = vec3(0.0);

	for (int i = 0; i < uLightCount && i < MAX_LIGHTS; i++) {
		vec3 toLight = uLightPos[i] - vWorldPos;
		float dist = length(toLight);
		vec3 l = toLight / dist;
		float atten = clamp(1.0 - dist / uLightRange[i], 0.0, 1.0);
		light += uLightColor[i] * max(dot(n, l), 0.0) * atten;
		vec3 h = normalize(l + v);
		spec += uLightColor[i] * pow(max(dot(n, h), 0.0), 32.0) * 0.25 * atten;
	}

	FragColor = vec4(uColor.rgb * light + spec, uColor.a);
}
`
