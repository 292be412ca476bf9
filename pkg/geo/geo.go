// Package geo provides geodesic calculations on the WGS84 ellipsoid.
package geo

import "math"

// WGS84 ellipsoid parameters.
const (
	wgs84A = 6378137.0           // semi-major axis in meters
	wgs84F = 1 / 298.257223563   // flattening
	wgs84B = wgs84A * (1 - wgs84F)
)

const convergence = 1e-12

// LatLon represents a geographic coordinate in degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// New creates a LatLon from latitude and longitude in degrees.
func New(lat, lon float64) LatLon {
	return LatLon{Lat: lat, Lon: lon}
}

// FromRadians creates a LatLon from latitude and longitude in radians.
func FromRadians(lat, lon float64) LatLon {
	return LatLon{Lat: lat * 180 / math.Pi, Lon: lon * 180 / math.Pi}
}

// FromDMS creates a LatLon from DMS latitude and longitude.
func FromDMS(lat, lon DMS) LatLon {
	return LatLon{Lat: lat.ToDegrees(), Lon: lon.ToDegrees()}
}

// Radians returns the latitude and longitude in radians.
func (p LatLon) Radians() (lat, lon float64) {
	return p.Lat * math.Pi / 180, p.Lon * math.Pi / 180
}

// ToDMS returns the coordinate as DMS latitude and longitude with cardinals.
func (p LatLon) ToDMS() (lat, lon DMS) {
	return FromLatitude(p.Lat), FromLongitude(p.Lon)
}

// Distance returns the geodesic distance between a and b in meters.
// Symmetric: Distance(a, b) == Distance(b, a).
func Distance(a, b LatLon) float64 {
	d, _ := inverse(a, b)
	return d
}

// Bearing returns the initial azimuth from a to b in degrees,
// normalized to [0, 360).
func Bearing(a, b LatLon) float64 {
	_, az := inverse(a, b)
	return math.Mod(az+360, 360)
}

// Destination returns the coordinate reached by travelling from origin on the
// given initial bearing (degrees, clockwise from north) for the given
// distance in meters.
func Destination(origin LatLon, bearing, distance float64) LatLon {
	sinAlpha1 := math.Sin(bearing * math.Pi / 180)
	cosAlpha1 := math.Cos(bearing * math.Pi / 180)

	phi1, lambda1 := origin.Radians()
	tanU1 := (1 - wgs84F) * math.Tan(phi1)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1

	sigma1 := math.Atan2(tanU1, cosAlpha1)
	sinAlpha := cosU1 * sinAlpha1
	cosSqAlpha := 1 - sinAlpha*sinAlpha
	uSq := cosSqAlpha * (wgs84A*wgs84A - wgs84B*wgs84B) / (wgs84B * wgs84B)
	bigA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	bigB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))

	sigma := distance / (wgs84B * bigA)
	var sinSigma, cosSigma, cosTwoSigmaM float64
	for i := 0; i < 100; i++ {
		cosTwoSigmaM = math.Cos(2*sigma1 + sigma)
		sinSigma = math.Sin(sigma)
		cosSigma = math.Cos(sigma)
		deltaSigma := bigB * sinSigma * (cosTwoSigmaM + bigB/4*
			(cosSigma*(-1+2*cosTwoSigmaM*cosTwoSigmaM)-
				bigB/6*cosTwoSigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cosTwoSigmaM*cosTwoSigmaM)))
		next := distance/(wgs84B*bigA) + deltaSigma
		if math.Abs(next-sigma) < convergence {
			sigma = next
			break
		}
		sigma = next
	}
	cosTwoSigmaM = math.Cos(2*sigma1 + sigma)
	sinSigma = math.Sin(sigma)
	cosSigma = math.Cos(sigma)

	tmp := sinU1*sinSigma - cosU1*cosSigma*cosAlpha1
	phi2 := math.Atan2(sinU1*cosSigma+cosU1*sinSigma*cosAlpha1,
		(1-wgs84F)*math.Sqrt(sinAlpha*sinAlpha+tmp*tmp))
	lambda := math.Atan2(sinSigma*sinAlpha1, cosU1*cosSigma-sinU1*sinSigma*cosAlpha1)
	c := wgs84F / 16 * cosSqAlpha * (4 + wgs84F*(4-3*cosSqAlpha))
	bigL := lambda - (1-c)*wgs84F*sinAlpha*
		(sigma+c*sinSigma*(cosTwoSigmaM+c*cosSigma*(-1+2*cosTwoSigmaM*cosTwoSigmaM)))

	return FromRadians(phi2, lambda1+bigL)
}

// DistanceXY decomposes the geodesic from a to b into local east/north
// offsets in meters: the unit north vector rotated clockwise by the initial
// azimuth, scaled by the geodesic distance.
func DistanceXY(a, b LatLon) (east, north float64) {
	d, az := inverse(a, b)
	p := headingToPoint(az)
	return p.x * d, p.y * d
}

// inverse solves the inverse geodesic problem (Vincenty), returning the
// distance in meters and the initial azimuth in degrees.
func inverse(a, b LatLon) (distance, azimuth float64) {
	phi1, lambda1 := a.Radians()
	phi2, lambda2 := b.Radians()

	bigL := lambda2 - lambda1
	tanU1 := (1 - wgs84F) * math.Tan(phi1)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1
	tanU2 := (1 - wgs84F) * math.Tan(phi2)
	cosU2 := 1 / math.Sqrt(1+tanU2*tanU2)
	sinU2 := tanU2 * cosU2

	lambda := bigL
	var sinLambda, cosLambda float64
	var sinSigma, cosSigma, sigma float64
	var sinAlpha, cosSqAlpha, cosTwoSigmaM float64
	for i := 0; i < 100; i++ {
		sinLambda = math.Sin(lambda)
		cosLambda = math.Cos(lambda)
		sinSigma = math.Sqrt(math.Pow(cosU2*sinLambda, 2) +
			math.Pow(cosU1*sinU2-sinU1*cosU2*cosLambda, 2))
		if sinSigma == 0 {
			// coincident points
			return 0, 0
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha = cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha == 0 {
			// equatorial line
			cosTwoSigmaM = 0
		} else {
			cosTwoSigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}
		c := wgs84F / 16 * cosSqAlpha * (4 + wgs84F*(4-3*cosSqAlpha))
		prev := lambda
		lambda = bigL + (1-c)*wgs84F*sinAlpha*
			(sigma+c*sinSigma*(cosTwoSigmaM+c*cosSigma*(-1+2*cosTwoSigmaM*cosTwoSigmaM)))
		if math.Abs(lambda-prev) < convergence {
			break
		}
	}

	uSq := cosSqAlpha * (wgs84A*wgs84A - wgs84B*wgs84B) / (wgs84B * wgs84B)
	bigA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	bigB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := bigB * sinSigma * (cosTwoSigmaM + bigB/4*
		(cosSigma*(-1+2*cosTwoSigmaM*cosTwoSigmaM)-
			bigB/6*cosTwoSigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cosTwoSigmaM*cosTwoSigmaM)))

	distance = wgs84B * bigA * (sigma - deltaSigma)
	azimuth = math.Atan2(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda) * 180 / math.Pi
	return distance, azimuth
}
