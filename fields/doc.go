// Package fields implements the spectral Maxwell solver of a cylindrically
// symmetric plasma simulation. Field data lives simultaneously on an
// interpolation grid (z, r) and on a spectral grid (kz, kr); the two are
// connected, per azimuthal mode, by an FFT along z and a discrete
// quasi-Hankel transform along r. Time integration uses the PSATD scheme:
// the exact per-wavenumber solution of the vacuum Maxwell equations, so the
// push is free of numerical dispersion and unconditionally stable.
package fields
